// Package observability provides the structured logging setup shared by every
// component. All handlers and services receive a *zap.Logger built here.
package observability
