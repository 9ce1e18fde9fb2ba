package pipeline

import "testing"

func TestDetectPriceListMessage(t *testing.T) {
	cases := []struct {
		name        string
		subject     string
		attachments []string
		want        bool
	}{
		{name: "greek subject with sheet", subject: "Νέος Τιμοκατάλογος Αντλιών", attachments: []string{"Τιμοκατάλογος αντλίες Clean.xlsx"}, want: true},
		{name: "english subject with sheet", subject: "Updated price list", attachments: []string{"pumps.xlsx"}, want: true},
		{name: "sheet only", subject: "FW: attached", attachments: []string{"list.xlsx"}, want: true},
		{name: "no attachment no keywords", subject: "Meeting tomorrow", attachments: nil, want: false},
		{name: "pdf invoice", subject: "Invoice 1234", attachments: []string{"invoice.pdf"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectPriceListMessage(tc.subject, tc.attachments)
			if got.IsPriceList != tc.want {
				t.Fatalf("score=%v isPriceList=%v want %v", got.Score, got.IsPriceList, tc.want)
			}
		})
	}
}
