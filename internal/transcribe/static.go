package transcribe

import (
	"context"
	"io"

	"github.com/rotisserie/eris"

	"github.com/mockmate/interview-cli/internal/scoring"
)

const staticTranscript = "This is a placeholder transcript from your recorded audio."

// Static is the no-intelligence provider: it drains the upload and returns a
// canned transcript plus pooled feedback.
type Static struct{}

// NewStatic creates the canned-transcript provider.
func NewStatic() *Static {
	return &Static{}
}

func (s *Static) Transcribe(ctx context.Context, audio io.Reader, filename string) (Result, error) {
	if audio == nil {
		return Result{}, eris.New("transcribe: no audio received")
	}
	if _, err := io.Copy(io.Discard, audio); err != nil {
		return Result{}, eris.Wrap(err, "transcribe: read audio")
	}
	return Result{
		Transcript: staticTranscript,
		Feedback:   scoring.RandomFeedback(),
	}, nil
}
