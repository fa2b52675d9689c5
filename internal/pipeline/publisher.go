package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// PublishOptions configures one publish step. The committer identity is
// passed per invocation; no global git configuration is touched.
type PublishOptions struct {
	Dir         string // directory whose changes are staged
	Remote      string
	Branch      string
	AuthorName  string
	AuthorEmail string
	Message     string
	Push        bool
}

// Revision is the outcome of a publish step. Published is false when the
// staged set was empty and no revision was created.
type Revision struct {
	SHA       string
	Published bool
}

// PushRejectedError marks a push the remote refused, e.g. because history
// diverged. The run fails; no retry or rebase is attempted.
type PushRejectedError struct {
	Remote string
	Branch string
	Err    error
}

func (e *PushRejectedError) Error() string {
	return fmt.Sprintf("push to %s/%s rejected: %s", e.Remote, e.Branch, e.Err)
}

func (e *PushRejectedError) Unwrap() error { return e.Err }

// Publisher records and transmits output changes as a revision.
type Publisher interface {
	Publish(ctx context.Context, opts PublishOptions) (Revision, error)
}

// GitPublisher publishes revisions with the git binary.
type GitPublisher struct {
	RepoDir string // empty means current directory
}

// Publish stages all changes under opts.Dir, commits them with the
// configured identity and message, and pushes the revision. An empty
// staged set is a successful no-op.
func (g *GitPublisher) Publish(ctx context.Context, opts PublishOptions) (Revision, error) {
	if _, err := g.git(ctx, "add", "--", opts.Dir); err != nil {
		return Revision{}, fmt.Errorf("staging %s: %w", opts.Dir, err)
	}

	staged, err := g.hasStagedChanges(ctx, opts.Dir)
	if err != nil {
		return Revision{}, err
	}
	if !staged {
		slog.Info("no changes to publish", "dir", opts.Dir)
		return Revision{}, nil
	}

	commitArgs := []string{
		"-c", "user.name=" + opts.AuthorName,
		"-c", "user.email=" + opts.AuthorEmail,
		"commit", "-m", opts.Message,
	}
	if _, err := g.git(ctx, commitArgs...); err != nil {
		return Revision{}, fmt.Errorf("committing: %w", err)
	}

	sha, err := g.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return Revision{}, fmt.Errorf("resolving revision: %w", err)
	}
	rev := Revision{SHA: strings.TrimSpace(sha), Published: true}

	if opts.Push {
		if _, err := g.git(ctx, "push", opts.Remote, "HEAD:"+opts.Branch); err != nil {
			return rev, &PushRejectedError{Remote: opts.Remote, Branch: opts.Branch, Err: err}
		}
		slog.Info("pushed revision", "revision", rev.SHA, "remote", opts.Remote, "branch", opts.Branch)
	}

	return rev, nil
}

// hasStagedChanges reports whether anything under dir is staged. git diff
// --cached --quiet exits 1 when the staged set is non-empty.
func (g *GitPublisher) hasStagedChanges(ctx context.Context, dir string) (bool, error) {
	_, err := g.git(ctx, "diff", "--cached", "--quiet", "--", dir)
	if err == nil {
		return false, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("checking staged changes: %w", err)
}

func (g *GitPublisher) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.RepoDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}
