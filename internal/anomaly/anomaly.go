package anomaly

import "fmt"

// Rule identifies which scheduling condition produced an anomaly.
type Rule string

// Supported rules in evaluation order.
const (
	RuleConsecutiveDays Rule = "consecutive_days"
	RuleShortRest       Rule = "short_rest"
	RuleLongShift       Rule = "long_shift"
)

const (
	consecutiveDaysReasonConstant  = "worked for 7 consecutive days"
	shortRestReasonConstant        = "has less than 10 hours between shifts but greater than 1 hour"
	longShiftReasonConstant        = "worked for more than 14 hours in a single shift"
	anomalyMessageTemplateConstant = "%s (%s) %s."
)

var ruleReasons = map[Rule]string{
	RuleConsecutiveDays: consecutiveDaysReasonConstant,
	RuleShortRest:       shortRestReasonConstant,
	RuleLongShift:       longShiftReasonConstant,
}

// Rules returns every rule in evaluation order.
func Rules() []Rule {
	return []Rule{RuleConsecutiveDays, RuleShortRest, RuleLongShift}
}

// Reason returns the human-readable description of the rule.
func (rule Rule) Reason() string {
	return ruleReasons[rule]
}

// Anomaly is a single detected condition for one employee.
type Anomaly struct {
	EmployeeName string
	PositionID   string
	Rule         Rule
	RowIndex     int
}

// Message renders the report line without a trailing newline.
func (anomaly Anomaly) Message() string {
	return fmt.Sprintf(anomalyMessageTemplateConstant, anomaly.EmployeeName, anomaly.PositionID, anomaly.Rule.Reason())
}
