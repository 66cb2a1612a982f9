package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldErrors 字段级校验错误，键为表单字段名，值为提示文案。
// 空map等价于校验通过，此时Validate返回nil而不是FieldErrors。
type FieldErrors struct {
	validation.Errors
}

// FieldMessages 展平为字段名到文案的映射，供响应体下发。
func (e FieldErrors) FieldMessages() map[string]string {
	messages := make(map[string]string, len(e.Errors))
	for field, err := range e.Errors {
		messages[field] = err.Error()
	}
	return messages
}

// wrap 将ozzo的校验结果规整为FieldErrors，无错误时返回nil。
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errs, ok := err.(validation.Errors); ok {
		if len(errs) == 0 {
			return nil
		}
		return FieldErrors{Errors: errs}
	}
	return err
}
