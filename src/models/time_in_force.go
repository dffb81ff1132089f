package models

import "fmt"

type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
)

func (t TimeInForce) Validate() error {
	switch t {
	case TimeInForceGTC, TimeInForceIOC, TimeInForceFOK:
		return nil
	default:
		return fmt.Errorf("invalid time in force: %s", t)
	}
}
