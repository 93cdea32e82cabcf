package domain

import "time"

// Player is a registered account with a cumulative score and its derived league.
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
	League      League `json:"league"`
}

// Quiz is an authored set of questions playable within a fixed time window.
// Only verified quizzes may be played.
type Quiz struct {
	ID            string        `json:"id"`
	AuthorID      string        `json:"authorId"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	AvailableTime time.Duration `json:"availableTime"`
	Verified      bool          `json:"verified"`
	Score         int           `json:"score"` // point budget for a full-correct run
}

// Answer is one of the four option letters a player can pick.
type Answer string

const (
	AnswerA Answer = "a"
	AnswerB Answer = "b"
	AnswerC Answer = "c"
	AnswerD Answer = "d"
)

// Question is a multiple-choice question with four fixed options and one correct letter.
type Question struct {
	ID            string `json:"id"`
	QuizID        string `json:"quizId"`
	Text          string `json:"text"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer Answer `json:"correctAnswer"`
}

// Standing is one row of the league standings table.
type Standing struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
	League   League `json:"league"`
}
