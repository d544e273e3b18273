package uploader

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// GitUploader publishes the report and data files by committing and pushing
// the configured repository working tree.
type GitUploader struct {
	log      *slog.Logger
	repoPath string
}

func NewGitUploader(log *slog.Logger, repoPath string) *GitUploader {
	return &GitUploader{log: log, repoPath: repoPath}
}

// Upload stages everything in the repository, commits with a timestamped
// message and pushes. An empty commit ("nothing to commit") is treated as
// success.
func (u *GitUploader) Upload(ctx context.Context) error {
	const opn = "uploader.GitUploader.Upload"

	if err := u.git(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	message := fmt.Sprintf("Update property data - %s", time.Now().Format("2006-01-02 15:04"))
	if err := u.git(ctx, "commit", "-m", message); err != nil {
		if strings.Contains(err.Error(), "nothing to commit") {
			u.log.InfoContext(ctx, "No report changes to upload")
			return nil
		}
		return fmt.Errorf("%s: %w", opn, err)
	}

	if err := u.git(ctx, "push"); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	u.log.InfoContext(ctx, "Reports uploaded", "repo", u.repoPath)

	return nil
}

func (u *GitUploader) git(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", u.repoPath}, args...)...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}

	return nil
}
