package slack

import (
	"fmt"
	"strings"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/audit"
)

// Block Kit types used by the audit notification
const (
	blockTypeHeader  = "header"
	blockTypeSection = "section"
	blockTypeDivider = "divider"

	textTypePlain   = "plain_text"
	textTypeMarkdwn = "mrkdwn"
)

// BuildAuditMessage renders a failing merchant's audit report as a Block Kit
// notification. The fallback text carries the verdict for clients that do not
// render blocks.
func BuildAuditMessage(report audit.Report) Message {
	msg := Message{
		Text: fmt.Sprintf("Policy audit %s: %s", report.ComplianceStatus, report.Website),
		Blocks: []Block{
			{
				Type: blockTypeHeader,
				Text: &TextObject{Type: textTypePlain, Text: "Policy Compliance Audit"},
			},
			{
				Type: blockTypeSection,
				Fields: []TextObject{
					{Type: textTypeMarkdwn, Text: fmt.Sprintf("*Website:*\n%s", report.Website)},
					{Type: textTypeMarkdwn, Text: fmt.Sprintf("*Verdict:*\n%s", report.ComplianceStatus)},
					{Type: textTypeMarkdwn, Text: fmt.Sprintf("*Merchant type:*\n%s", report.MerchantType)},
					{Type: textTypeMarkdwn, Text: fmt.Sprintf("*Proprietorship:*\n%t", report.IsProprietorship)},
				},
			},
		},
	}

	if len(report.MissingPolicies) > 0 {
		msg.Blocks = append(msg.Blocks, Block{Type: blockTypeDivider}, Block{
			Type: blockTypeSection,
			Text: &TextObject{
				Type: textTypeMarkdwn,
				Text: fmt.Sprintf("*Missing:* %s", strings.Join(report.MissingPolicies, ", ")),
			},
		})
	}

	if report.ManualCheckingRequired == "YES" {
		msg.Blocks = append(msg.Blocks, Block{
			Type: blockTypeSection,
			Text: &TextObject{
				Type: textTypeMarkdwn,
				Text: "*Manual checking required:* no relevant policy pages were located",
			},
		})
	}

	if report.Error != "" {
		msg.Blocks = append(msg.Blocks, Block{
			Type: blockTypeSection,
			Text: &TextObject{
				Type: textTypeMarkdwn,
				Text: fmt.Sprintf("*Audit error:* %s", report.Error),
			},
		})
	}

	return msg
}
