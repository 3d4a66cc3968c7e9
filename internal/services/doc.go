// Package services holds the application service layer between HTTP
// transport and the summarization core. Services own the caller-level
// policies the core stays agnostic of, such as failing a request outright
// when every requested column is missing.
package services
