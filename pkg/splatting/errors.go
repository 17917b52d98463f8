package splatting

import (
	"fmt"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

func invalidRadius(name string, radius int) error {
	return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("%s: radius %d must be positive", name, radius))
}

func invalidParameter(name, msg string) error {
	return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("%s: %s", name, msg))
}
