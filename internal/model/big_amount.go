package model

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// BigAmount 以十进制字符串入库的大整数金额，对应链上的 uint256，
// 内部不使用浮点数
type BigAmount struct {
	value *big.Int
}

// NewBigAmount 从 big.Int 创建金额
func NewBigAmount(v *big.Int) BigAmount {
	if v == nil {
		return BigAmount{value: new(big.Int)}
	}
	return BigAmount{value: new(big.Int).Set(v)}
}

// Int 返回底层整数的副本
func (a BigAmount) Int() *big.Int {
	if a.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.value)
}

// String 十进制字符串
func (a BigAmount) String() string {
	if a.value == nil {
		return "0"
	}
	return a.value.String()
}

// Value 实现 driver.Valuer
func (a BigAmount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan 实现 sql.Scanner
func (a *BigAmount) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		a.value = new(big.Int)
		return nil
	case int64:
		a.value = big.NewInt(v)
		return nil
	case []byte:
		return a.setString(string(v))
	case string:
		return a.setString(v)
	case float64:
		// sqlite 的 NUMERIC 亲和可能返回浮点，仅接受整数值
		if v != float64(int64(v)) {
			return fmt.Errorf("non-integer amount value: %v", v)
		}
		a.value = big.NewInt(int64(v))
		return nil
	default:
		return fmt.Errorf("unsupported amount type: %T", src)
	}
}

func (a *BigAmount) setString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		a.value = new(big.Int)
		return nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("invalid amount value: %q", s)
	}
	a.value = v
	return nil
}

// GormDataType 统一列类型
func (BigAmount) GormDataType() string {
	return "numeric(78,0)"
}

// MarshalJSON 以十进制字符串输出
func (a BigAmount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON 接受带引号或不带引号的十进制
func (a *BigAmount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return a.setString(s)
}
