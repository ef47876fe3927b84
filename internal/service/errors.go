package service

import "errors"

var (
	ErrChatNotFound       = errors.New("chat not found")
	ErrPlanNotReady       = errors.New("plan is not ready; finish the conversation first")
	ErrMealNotFound       = errors.New("meal not found in plan")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrExportDisabled     = errors.New("plan export is not configured")
)
