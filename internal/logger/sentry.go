package logger

import (
	"go.uber.org/zap"
)

// WorkflowInfo holds Temporal workflow execution details for log and Sentry
// scope tagging
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	Namespace    string
	TaskQueue    string
}

// WithWorkflowInfo returns a logger carrying the workflow execution fields.
// Events logged through it are tagged in Sentry with the workflow identity,
// so failures group by workflow type instead of by message.
func WithWorkflowInfo(info WorkflowInfo) *zap.Logger {
	return log.With(
		zap.String("workflow_type", info.WorkflowType),
		zap.String("workflow_id", info.WorkflowID),
		zap.String("workflow_run_id", info.RunID),
		zap.String("temporal_namespace", info.Namespace),
		zap.String("temporal_task_queue", info.TaskQueue),
	)
}

// InfoWorkflow logs an info message with workflow execution fields
func InfoWorkflow(info WorkflowInfo, msg string, fields ...zap.Field) {
	WithWorkflowInfo(info).Info(msg, fields...)
}

// ErrorWorkflow logs an error message with workflow execution fields
func ErrorWorkflow(info WorkflowInfo, err error, fields ...zap.Field) {
	if err != nil {
		WithWorkflowInfo(info).Error(err.Error(), fields...)
	} else {
		WithWorkflowInfo(info).Error("error occurred", fields...)
	}
}

// WarnWorkflow logs a warning message with workflow execution fields
func WarnWorkflow(info WorkflowInfo, msg string, fields ...zap.Field) {
	WithWorkflowInfo(info).Warn(msg, fields...)
}

// DebugWorkflow logs a debug message with workflow execution fields
func DebugWorkflow(info WorkflowInfo, msg string, fields ...zap.Field) {
	WithWorkflowInfo(info).Debug(msg, fields...)
}
