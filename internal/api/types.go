package api

import (
	"github.com/samcharles93/naca456/internal/engine"
	"github.com/samcharles93/naca456/internal/namelist"
)

type AirfoilResponse struct {
	ID            string          `json:"id"`
	Object        string          `json:"object"`
	CreatedAt     int64           `json:"created_at"`
	Name          string          `json:"name"`
	Stem          string          `json:"stem"`
	Cambered      bool            `json:"cambered"`
	Points        int             `json:"points"`
	MaxThickness  float64         `json:"max_thickness"`
	MaxThicknessX float64         `json:"max_thickness_x"`
	ElapsedMS     int64           `json:"elapsed_ms"`
	Ignored       []string        `json:"ignored,omitempty"`
	Params        namelist.Params `json:"params"`
	Files         engine.Files    `json:"files"`
}

type AirfoilList struct {
	Object  string            `json:"object"`
	Data    []AirfoilResponse `json:"data"`
	FirstID string            `json:"first_id,omitempty"`
	LastID  string            `json:"last_id,omitempty"`
	HasMore bool              `json:"has_more"`
}

type OrdinatesResponse struct {
	ID       string    `json:"id"`
	Object   string    `json:"object"`
	Name     string    `json:"name"`
	Cambered bool      `json:"cambered"`
	X        []float64 `json:"x"`
	YUpper   []float64 `json:"y_upper"`
	YLower   []float64 `json:"y_lower"`
}

type DeleteAirfoilResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type ValidateResponse struct {
	Valid    bool                  `json:"valid"`
	Errors   []namelist.FieldError `json:"errors"`
	Ignored  []string              `json:"ignored"`
	Name     string                `json:"name,omitempty"`
	Namelist string                `json:"namelist,omitempty"`
}

type FieldList struct {
	Object string               `json:"object"`
	Data   []namelist.FieldSpec `json:"data"`
}

type ResponseError struct {
	Message string                `json:"message,omitempty"`
	Type    string                `json:"type,omitempty"`
	Code    string                `json:"code,omitempty"`
	Param   string                `json:"param,omitempty"`
	Details []namelist.FieldError `json:"details,omitempty"`
}
