package service

import (
	"errors"
	"fmt"
	"strings"

	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
)

// SessionState describes where a practice session is in its lifecycle
type SessionState string

const (
	SessionSetup    SessionState = "setup"
	SessionActive   SessionState = "active"
	SessionFinished SessionState = "finished"
)

var (
	ErrSessionNotActive = errors.New("practice session is not active")
	ErrNoQuestions      = errors.New("the session has no question to answer")
	ErrAlreadyAnswered  = errors.New("the current question was already answered")
)

// AnswerRecord pairs a question with the answer given during a session
type AnswerRecord struct {
	Question models.PracticeQuestion `json:"question"`
	Answer   string                  `json:"answer"`
	Correct  bool                    `json:"correct"`
}

// PracticeSession walks a child through their incomplete practice
// questions one at a time. The working set is captured when the session
// starts and does not change afterwards, even if questions are added or
// completed elsewhere.
type PracticeSession struct {
	state     SessionState
	childID   string
	subject   string
	questions []models.PracticeQuestion
	index     int
	answered  []bool
	answers   []AnswerRecord
}

// PracticeService starts sessions and persists answers as they come in
type PracticeService struct {
	practice *repository.PracticeQuestionRepository
	children *repository.ChildRepository
}

// NewPracticeService creates a new practice service
func NewPracticeService(practice *repository.PracticeQuestionRepository, children *repository.ChildRepository) *PracticeService {
	return &PracticeService{practice: practice, children: children}
}

// StartSession captures the incomplete questions matching the filters and
// returns an active session. An empty or "all" childID spans every child,
// an empty or "all" subject spans every subject. The session comes back
// active even when nothing matches; the caller sees the empty working set
// and can restart once new questions exist.
func (s *PracticeService) StartSession(childID, subject string) (*PracticeSession, error) {
	if childID == "all" {
		childID = ""
	}
	if childID != "" {
		if _, err := s.children.Get(childID); err != nil {
			return nil, err
		}
	}

	questions, err := s.practice.Incomplete(childID, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice questions: %w", err)
	}

	return &PracticeSession{
		state:     SessionActive,
		childID:   childID,
		subject:   subject,
		questions: questions,
		answered:  make([]bool, len(questions)),
	}, nil
}

// SubmitAnswer grades the current question, persists the result on the
// question record, and records the answer. The session stays on the same
// question until Advance is called.
func (s *PracticeService) SubmitAnswer(sess *PracticeSession, answer string) (bool, error) {
	if sess.state != SessionActive {
		return false, ErrSessionNotActive
	}
	if sess.index >= len(sess.questions) {
		return false, ErrNoQuestions
	}
	if sess.answered[sess.index] {
		return false, ErrAlreadyAnswered
	}

	q := sess.questions[sess.index]
	correct := CheckAnswer(q, answer)

	updated, err := s.practice.Update(q.ID, map[string]any{
		"completed":      true,
		"child_answer":   answer,
		"answer_correct": correct,
	})
	if err != nil {
		return false, fmt.Errorf("failed to record answer: %w", err)
	}
	sess.questions[sess.index] = updated
	sess.answered[sess.index] = true

	sess.answers = append(sess.answers, AnswerRecord{
		Question: updated,
		Answer:   answer,
		Correct:  correct,
	})
	return correct, nil
}

// Advance moves the session to the next question, or finishes it when the
// working set is exhausted
func (s *PracticeService) Advance(sess *PracticeSession) error {
	if sess.state != SessionActive {
		return ErrSessionNotActive
	}
	sess.index++
	if sess.index >= len(sess.questions) {
		sess.state = SessionFinished
	}
	return nil
}

// Restart begins a fresh session for the same child and subject
func (s *PracticeService) Restart(sess *PracticeSession) (*PracticeSession, error) {
	return s.StartSession(sess.childID, sess.subject)
}

// State returns the session's lifecycle state
func (sess *PracticeSession) State() SessionState {
	return sess.state
}

// ChildID returns the child the session belongs to
func (sess *PracticeSession) ChildID() string {
	return sess.childID
}

// Subject returns the subject filter the session was started with
func (sess *PracticeSession) Subject() string {
	return sess.subject
}

// Current returns the question awaiting an answer
func (sess *PracticeSession) Current() (models.PracticeQuestion, bool) {
	if sess.state != SessionActive || sess.index >= len(sess.questions) {
		return models.PracticeQuestion{}, false
	}
	return sess.questions[sess.index], true
}

// Position reports the 1-based question number and the working set size
func (sess *PracticeSession) Position() (int, int) {
	pos := sess.index + 1
	if pos > len(sess.questions) {
		pos = len(sess.questions)
	}
	return pos, len(sess.questions)
}

// Answered reports whether the current question already has an answer
// recorded this session
func (sess *PracticeSession) Answered() bool {
	return sess.index < len(sess.answered) && sess.answered[sess.index]
}

// Answers returns the answers given so far, in order
func (sess *PracticeSession) Answers() []AnswerRecord {
	out := make([]AnswerRecord, len(sess.answers))
	copy(out, sess.answers)
	return out
}

// Score returns the session score as a whole percentage
func (sess *PracticeSession) Score() int {
	correct := 0
	for _, a := range sess.answers {
		if a.Correct {
			correct++
		}
	}
	return models.Score(correct, len(sess.answers))
}

// CheckAnswer compares a raw answer against the question's correct answer.
// Choice questions demand an exact match, free-form answers are trimmed
// and compared case-insensitively.
func CheckAnswer(q models.PracticeQuestion, answer string) bool {
	if q.QuestionType.IsChoice() {
		return answer == q.CorrectAnswer
	}
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
}
