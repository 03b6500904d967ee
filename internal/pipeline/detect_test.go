package pipeline

import "testing"

func TestDetectFactoringMail(t *testing.T) {
	cases := []struct {
		name        string
		subject     string
		text        string
		attachments []string
		want        bool
	}{
		{
			name:        "message batch attached",
			subject:     "EDIfactoring MSG01 batch week 44",
			text:        "Weekly batch attached.",
			attachments: []string{"msg_batch.xml"},
			want:        true,
		},
		{
			name:    "inline message body",
			subject: "fwd",
			text:    "<MSG05><MsgInfo>...</MsgInfo></MSG05>",
			want:    true,
		},
		{
			name:        "report print",
			subject:     "Monthly volume report December",
			text:        "see attached",
			attachments: []string{"stat_dec.prn"},
			want:        true,
		},
		{
			name:    "newsletter",
			subject: "Lunch menu this week",
			text:    "Monday: soup. Tuesday: pasta.",
			want:    false,
		},
		{
			name:        "random attachment only",
			subject:     "holiday photos",
			text:        "enjoy",
			attachments: []string{"beach.jpg"},
			want:        false,
		},
	}

	for _, tc := range cases {
		got := DetectFactoringMail(tc.subject, tc.text, tc.attachments)
		if got.IsFactoring != tc.want {
			t.Fatalf("%s: IsFactoring = %v (score %.2f), want %v", tc.name, got.IsFactoring, got.Score, tc.want)
		}
	}
}

func TestDetectScoreBounds(t *testing.T) {
	got := DetectFactoringMail(
		"MSG01 MSG02 MSG05 MSG07 edifactoring credit cover factoring",
		"<msg01> edifactoring volume report commission report",
		[]string{"a.xml"},
	)
	if got.Score > 1 {
		t.Fatalf("score = %.2f, must be capped at 1", got.Score)
	}
	if !got.IsFactoring || got.Reason != "rules_positive" {
		t.Fatalf("result = %+v", got)
	}
}
