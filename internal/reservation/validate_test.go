package reservation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldsOf flattens a validation error into the violated field names.
// nil means the input passed.
func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestValidateCreate(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		name    string
		mutate  func(*CreateInput)
		wantBad []string
	}{
		{"valid request", func(in *CreateInput) {}, nil},

		{"name too short", func(in *CreateInput) { in.CustomerName = "A" }, []string{"customer_name"}},
		{"name minimum length", func(in *CreateInput) { in.CustomerName = "Al" }, nil},
		{"name at limit", func(in *CreateInput) { in.CustomerName = strings.Repeat("a", 100) }, nil},
		{"name over limit", func(in *CreateInput) { in.CustomerName = strings.Repeat("a", 101) }, []string{"customer_name"}},
		{"accented name with hyphen and apostrophe", func(in *CreateInput) { in.CustomerName = "José-María O'Brien" }, nil},
		{"name with digits", func(in *CreateInput) { in.CustomerName = "R2 D2" }, []string{"customer_name"}},
		{"name missing", func(in *CreateInput) { in.CustomerName = "" }, []string{"customer_name"}},

		{"email malformed", func(in *CreateInput) { in.CustomerEmail = "nope@" }, []string{"customer_email"}},
		{"email missing", func(in *CreateInput) { in.CustomerEmail = "" }, []string{"customer_email"}},

		{"phone formatted", func(in *CreateInput) { in.CustomerPhone = "+1 (555) 012-3456" }, nil},
		{"phone too few digits", func(in *CreateInput) { in.CustomerPhone = "12345" }, []string{"customer_phone"}},
		{"phone too many digits", func(in *CreateInput) { in.CustomerPhone = "1234567890123456" }, []string{"customer_phone"}},
		{"phone with letters", func(in *CreateInput) { in.CustomerPhone = "call me maybe" }, []string{"customer_phone"}},

		{"date malformed", func(in *CreateInput) { in.Date = "15/09/2026" }, []string{"date"}},
		{"date in the past", func(in *CreateInput) { in.Date = "2026-08-31" }, []string{"date"}},
		{"date today", func(in *CreateInput) { in.Date = "2026-09-01" }, nil},
		{"date at horizon", func(in *CreateInput) { in.Date = "2026-10-31" }, nil},
		{"date past horizon", func(in *CreateInput) { in.Date = "2026-11-01" }, []string{"date"}},

		{"start at opening", func(in *CreateInput) { in.StartTime = "08:00" }, nil},
		{"start before opening", func(in *CreateInput) { in.StartTime = "07:59" }, []string{"start_time"}},
		{"last bookable start", func(in *CreateInput) { in.StartTime = "22:59" }, nil},
		{"start at closing", func(in *CreateInput) { in.StartTime = "23:00" }, []string{"start_time"}},
		{"start malformed", func(in *CreateInput) { in.StartTime = "7pm" }, []string{"start_time"}},

		{"party of one", func(in *CreateInput) { in.PartySize = 1 }, nil},
		{"party of twenty", func(in *CreateInput) { in.PartySize = 20 }, nil},
		{"party of zero", func(in *CreateInput) { in.PartySize = 0 }, []string{"party_size"}},
		{"party of twenty-one", func(in *CreateInput) { in.PartySize = 21 }, []string{"party_size"}},

		{
			"all violations reported together",
			func(in *CreateInput) {
				in.CustomerName = ""
				in.CustomerEmail = "broken"
				in.CustomerPhone = "x"
				in.Date = "never"
				in.StartTime = "25:00"
				in.PartySize = -1
			},
			[]string{"customer_name", "customer_email", "customer_phone", "date", "start_time", "party_size"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := validateCreate(in, testNow, policy)
			assert.ElementsMatch(t, tc.wantBad, fieldsOf(t, err))
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	err := validateUpdate(UpdateInput{
		CustomerName:  "Alice Moreau",
		CustomerEmail: "alice@example.com",
		CustomerPhone: "+1 555 012 3456",
	})
	assert.NoError(t, err)

	err = validateUpdate(UpdateInput{CustomerName: "", CustomerEmail: "bad", CustomerPhone: ""})
	assert.ElementsMatch(t,
		[]string{"customer_name", "customer_email", "customer_phone"},
		fieldsOf(t, err))
}
