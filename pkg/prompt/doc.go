// Package prompt collects certificate custom fields interactively. Prompts go
// through a PromptDriver so flows stay testable; NewSurveyDriver provides the
// terminal implementation.
package prompt
