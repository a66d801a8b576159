// SPDX-License-Identifier: GPL-2.0-only

package micromamba

import (
	"context"
	"os"
	"os/exec"

	"github.com/Checkmk/csm/internal/config"
)

// mambaRootPrefixEnv is the environment variable micromamba reads for its
// root prefix; it is set on the child only when the config overrides it.
const mambaRootPrefixEnv = "MAMBA_ROOT_PREFIX"

// command builds an exec.Cmd ready to shell out to micromamba at the given
// path (a bare name resolved via $PATH, or an absolute path into the cache)
// with the appropriate environment based on configuration. It logs the
// command about to run, at info level in noop mode so the user sees exactly
// what would have happened and at debug level otherwise. It touches nothing
// else: no filesystem access, no spawn.
func (r *Runner) command(ctx context.Context, path string, cfg *config.Config, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, path, args...)
	if cfg.MambaRootPrefix != "" {
		cmd.Env = append(os.Environ(), mambaRootPrefixEnv+"="+cfg.MambaRootPrefix)
	}
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if cfg.NoopMode {
		r.logger.Info("Would run", "cmd", cmd.String())
	} else {
		r.logger.Debug("About to run", "cmd", cmd.String())
	}
	return cmd
}
