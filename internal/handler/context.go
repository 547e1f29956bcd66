package handler

type ContextKey string

var (
	EmployeeCtx ContextKey = "employee"
)
