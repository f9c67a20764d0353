package utils

import (
	"errors"
	"unicode"
)

// MinPasswordLength 密码最小长度
const MinPasswordLength = 8

// ValidatePassword 注册/改密时的密码强度策略：
// 至少 8 位，且 大写/小写/数字/符号 四类字符中至少命中三类。
// "123ABCabc%%" 通过，"fg88jj" 和空串不通过。
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	if len([]rune(password)) < MinPasswordLength {
		return errors.New("password is too short, minimum 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	classes := 0
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if ok {
			classes++
		}
	}
	if classes < 3 {
		return errors.New("password is too weak, mix upper/lower case letters, digits and symbols")
	}
	return nil
}
