package models

import "fmt"

// APIError is an error payload returned by the exchange, e.g.
// {"code": -1121, "msg": "Invalid symbol."}.
type APIError struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance api error %d: %s", e.Code, e.Msg)
}
