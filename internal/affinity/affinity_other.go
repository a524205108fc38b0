//go:build !linux

package affinity

import "errors"

var errUnsupported = errors.New("cpu pinning is not supported on this platform")

func pinToCore(int) (func(), error) {
	return nil, errUnsupported
}
