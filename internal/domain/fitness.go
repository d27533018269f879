// Package domain defines the core client-side models for fittrack.
package domain

import "time"

// Stats is the workout statistics payload from GET /user/stats.
type Stats struct {
	TotalWorkouts          int       `json:"totalWorkouts"`
	TotalCaloriesBurned    float64   `json:"totalCaloriesBurned"`
	AverageWorkoutDuration float64   `json:"averageWorkoutDuration"`
	TotalDistanceCovered   float64   `json:"totalDistanceCovered"`
	LastWorkout            time.Time `json:"lastWorkout"`
}

// Goal is a fitness goal record from GET /user/goals.
type Goal struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit"`
	Progress    float64 `json:"progress,omitempty"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`
}

// NewGoal is the creation payload for POST /user/goals.
type NewGoal struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Target      string `json:"target"`
	Unit        string `json:"unit"`
}
