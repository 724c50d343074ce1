package notice

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// draftFileMode is the permission for written draft files
	draftFileMode = 0o600
	// draftDirMode is the permission for the drafts directory
	draftDirMode = 0o750
)

// unsafeFilenameChars matches characters replaced when deriving a draft filename
var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9.-]+`)

// WriteDraft stores a draft as a text file under dir, named after the
// recipient so reviewers can find it. Creates the directory when needed.
func WriteDraft(dir string, draft Draft) (string, error) {
	if err := os.MkdirAll(dir, draftDirMode); err != nil {
		return "", fmt.Errorf("creating drafts directory: %w", err)
	}

	path := filepath.Join(dir, draftFilename(draft.Recipient))

	content := fmt.Sprintf("To: %s\nSubject: %s\n\n%s", draft.Recipient, draft.Subject, draft.Body)

	if err := os.WriteFile(path, []byte(content), draftFileMode); err != nil {
		return "", fmt.Errorf("writing draft: %w", err)
	}

	return path, nil
}

// draftFilename derives a stable filesystem-safe name from a recipient address
func draftFilename(recipient string) string {
	name := unsafeFilenameChars.ReplaceAllString(strings.ToLower(recipient), "_")
	if name == "" {
		name = "draft"
	}

	return name + ".txt"
}
