// Package jira implements issue operations against the Jira Cloud REST API.
//
// The Client wraps the retrying executor in package rest and exposes
// typed operations: creating, updating, searching, transitioning, linking,
// commenting on, and attaching files to issues. Markdown text accepted by
// operations is converted to Atlassian Document Format before submission.
//
// Field rules vary by issue type: epics cannot take a parent and subtasks
// cannot take a priority, so those fields are silently dropped when the
// issue type forbids them.
package jira
