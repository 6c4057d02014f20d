package domain

import (
	"fmt"
	"strings"
)

// FormType identifies what kind of form was submitted
type FormType string

const (
	FormTypeIncidentReport FormType = "incident_report"
	FormTypeFeedback       FormType = "feedback"
	FormTypeRequest        FormType = "request"
	FormTypeComplaint      FormType = "complaint"
	FormTypeSuggestion     FormType = "suggestion"
)

// Priority of a submission
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is applied when a submission is created without a priority
const DefaultPriority = PriorityMedium

// Category routes a submission to a department
type Category string

const (
	CategorySafety     Category = "safety"
	CategoryHR         Category = "hr"
	CategoryIT         Category = "it"
	CategoryFacilities Category = "facilities"
	CategoryFinance    Category = "finance"
	CategoryGeneral    Category = "general"
)

// Status is the lifecycle state of a submission. Any status may move to any other.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

// InitialStatus is the status every submission is created with
const InitialStatus = StatusSubmitted

var (
	formTypes  = []FormType{FormTypeIncidentReport, FormTypeFeedback, FormTypeRequest, FormTypeComplaint, FormTypeSuggestion}
	priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	categories = []Category{CategorySafety, CategoryHR, CategoryIT, CategoryFacilities, CategoryFinance, CategoryGeneral}
	statuses   = []Status{StatusSubmitted, StatusInProgress, StatusCompleted, StatusRejected}
)

// FormTypes lists every valid form type in declaration order
func FormTypes() []FormType { return append([]FormType(nil), formTypes...) }

// Priorities lists every valid priority in declaration order
func Priorities() []Priority { return append([]Priority(nil), priorities...) }

// Categories lists every valid category in declaration order
func Categories() []Category { return append([]Category(nil), categories...) }

// Statuses lists every valid status in declaration order
func Statuses() []Status { return append([]Status(nil), statuses...) }

// ParseFormType converts a raw value into a FormType
func ParseFormType(s string) (FormType, error) {
	switch v := FormType(s); v {
	case FormTypeIncidentReport, FormTypeFeedback, FormTypeRequest, FormTypeComplaint, FormTypeSuggestion:
		return v, nil
	}
	return "", enumError("form type", formTypes)
}

// ParsePriority converts a raw value into a Priority
func ParsePriority(s string) (Priority, error) {
	switch v := Priority(s); v {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return v, nil
	}
	return "", enumError("priority", priorities)
}

// ParseCategory converts a raw value into a Category
func ParseCategory(s string) (Category, error) {
	switch v := Category(s); v {
	case CategorySafety, CategoryHR, CategoryIT, CategoryFacilities, CategoryFinance, CategoryGeneral:
		return v, nil
	}
	return "", enumError("category", categories)
}

// ParseStatus converts a raw value into a Status
func ParseStatus(s string) (Status, error) {
	switch v := Status(s); v {
	case StatusSubmitted, StatusInProgress, StatusCompleted, StatusRejected:
		return v, nil
	}
	return "", enumError("status", statuses)
}

func enumError[T ~string](name string, allowed []T) error {
	values := make([]string, len(allowed))
	for i, v := range allowed {
		values[i] = string(v)
	}
	return fmt.Errorf("%s must be one of: %s", name, strings.Join(values, ", "))
}
