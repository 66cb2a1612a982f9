package form

import "testing"

func TestCommentFormRejectsBlankContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		f := CommentCreateForm{InterviewId: "iv1", Content: content, Rating: 4}
		msgs := fieldMessages(t, f.Validate())
		if msgs["content"] != ErrCommentRequiredMsg {
			t.Errorf("content=%q: got %v", content, msgs)
		}
	}
}

func TestCommentFormRatingRange(t *testing.T) {
	for _, rating := range []int{-1, 6, 100} {
		f := CommentCreateForm{InterviewId: "iv1", Content: "solid answers", Rating: rating}
		msgs := fieldMessages(t, f.Validate())
		if msgs["rating"] != ErrRatingRangeMsg {
			t.Errorf("rating=%d: got %v", rating, msgs)
		}
	}
	for rating := 1; rating <= 5; rating++ {
		f := CommentCreateForm{InterviewId: "iv1", Content: "solid answers", Rating: rating}
		if err := f.Validate(); err != nil {
			t.Errorf("rating=%d: want valid, got %v", rating, err)
		}
	}
}

func TestCommentFormFillDefault(t *testing.T) {
	f := CommentCreateForm{InterviewId: "iv1", Content: "ok"}
	f.FillDefault()
	if f.Rating != DefaultRating {
		t.Fatalf("rating = %d, want %d", f.Rating, DefaultRating)
	}
	f = CommentCreateForm{InterviewId: "iv1", Content: "ok", Rating: 5}
	f.FillDefault()
	if f.Rating != 5 {
		t.Fatalf("rating overwritten to %d", f.Rating)
	}
}
