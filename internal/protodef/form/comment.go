package form

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultRating 未选择评分时的默认星级。
	DefaultRating = 3

	ErrCommentRequiredMsg = "Please enter a comment"
	ErrRatingRangeMsg     = "Rating must be between 1 and 5"
)

// CommentCreateForm 提交面试评价的表单。
type CommentCreateForm struct {
	InterviewId string `json:"interviewId" form:"interviewId"`
	Content     string `json:"content" form:"content"`
	Rating      int    `json:"rating" form:"rating"`
}

// FillDefault 评分缺省为3星。
func (f *CommentCreateForm) FillDefault() {
	if f.Rating == 0 {
		f.Rating = DefaultRating
	}
}

// Validate 空白评论在任何后端调用之前拒绝；评分只接受1~5的整数。
func (f *CommentCreateForm) Validate() error {
	err := validation.ValidateStruct(f,
		validation.Field(&f.InterviewId, validation.Required),
		validation.Field(&f.Content, validation.By(contentRule)),
		validation.Field(&f.Rating, validation.By(ratingRule)),
	)
	return wrap(err)
}

func contentRule(value interface{}) error {
	if strings.TrimSpace(value.(string)) == "" {
		return fmt.Errorf(ErrCommentRequiredMsg)
	}
	return nil
}

func ratingRule(value interface{}) error {
	rating := value.(int)
	if rating < 1 || rating > 5 {
		return fmt.Errorf(ErrRatingRangeMsg)
	}
	return nil
}
