package web

import "net/http"

// Outcome is what a stage decided about the request.
type Outcome int

const (
	// OutcomeContinue hands the request to the next stage.
	OutcomeContinue Outcome = iota
	// OutcomeRespond means the stage wrote a response; processing stops.
	OutcomeRespond
	// OutcomeFail stops processing and forwards Err to the error handler.
	OutcomeFail
)

// Result is returned by every stage.
type Result struct {
	Err     error
	Outcome Outcome
}

// Continue passes control to the next stage.
func Continue() Result {
	return Result{Outcome: OutcomeContinue}
}

// Respond reports that the stage already wrote the response.
func Respond() Result {
	return Result{Outcome: OutcomeRespond}
}

// Fail aborts the request with err.
func Fail(err error) Result {
	return Result{Outcome: OutcomeFail, Err: err}
}

// Stage transforms a request before dispatch. Stages run in registration order.
type Stage struct {
	Run  func(c Context) Result
	Name string
}

// NewStage names a stage function.
func NewStage(name string, fn func(c Context) Result) Stage {
	return Stage{Name: name, Run: fn}
}

// Pipeline is an ordered list of stages.
type Pipeline []Stage

// Run executes stages until one does not continue.
// The returned Result is the first non-continue outcome, or Continue when every stage passed.
func (p Pipeline) Run(c Context) Result {
	for _, s := range p {
		res := s.Run(c)
		switch res.Outcome {
		case OutcomeContinue:
			continue
		case OutcomeFail:
			if res.Err == nil {
				res.Err = NewHTTPError(http.StatusInternalServerError, "stage "+s.Name+" failed")
			}
			return res
		default:
			return res
		}
	}
	return Continue()
}
