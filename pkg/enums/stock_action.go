package enums

import "fmt"

// StockAction names the direction of a stock mutation.
type StockAction string

const (
	StockActionAdd    StockAction = "add"
	StockActionRemove StockAction = "remove"
)

func (a StockAction) String() string {
	return string(a)
}

func (a StockAction) IsValid() bool {
	switch a {
	case StockActionAdd, StockActionRemove:
		return true
	}
	return false
}

func ParseStockAction(value string) (StockAction, error) {
	action := StockAction(value)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid stock action %q", value)
	}
	return action, nil
}
