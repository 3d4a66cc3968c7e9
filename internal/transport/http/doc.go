// Package http implements the HTTP request handlers of the column-summary
// service. It provides a thin layer between HTTP transport and business
// logic: handlers parse and validate requests, delegate to the service
// layer and transform service errors into RFC 7807 problem responses.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Summarizer
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// All errors follow the RFC 7807 Problem Details specification:
//
//	{
//	    "type": "/errors/summary/columns-not-found",
//	    "title": "Columns Not Found",
//	    "status": 400,
//	    "detail": "None of the requested columns were found in the header row",
//	    "instance": "/api/summary"
//	}
//
// Handlers are tested with httptest against the real service layer; the
// summarization core is deterministic, so no mocks are needed.
package http
