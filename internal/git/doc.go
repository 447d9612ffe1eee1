// Package git wraps the Git CLI commands branchbox runs on the host:
// branch inspection, remote default-branch detection, and repository
// checks. Git operations inside a container go through the engine's exec
// path instead.
package git
