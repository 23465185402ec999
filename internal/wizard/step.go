package wizard

type Step int

const (
	StepSpaceSelection Step = iota + 1
	StepDateAndDuration
	StepGuestAndContactDetails
	StepReviewAndPayment
)

var stepNames = map[Step]string{
	StepSpaceSelection:         "space_selection",
	StepDateAndDuration:        "date_and_duration",
	StepGuestAndContactDetails: "guest_and_contact_details",
	StepReviewAndPayment:       "review_and_payment",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s Step) First() bool { return s == StepSpaceSelection }
func (s Step) Last() bool  { return s == StepReviewAndPayment }
