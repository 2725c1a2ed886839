// Docpilot reviews documentation pull requests with a remote language model.
//
// It runs as a GitHub webhook service or as a one-shot CLI. Given a changed
// markdown document it classifies the document type, diffs its logical
// sections, lints it, and asks the model for a structured review with a
// verdict, key risks, a reviewer checklist and a suggested PR description.
// When the model is unavailable or returns garbage it degrades to a short
// plain-text summary, and finally to posting nothing at all.
//
// Usage:
//
//	docpilot serve                    # run the webhook server
//	docpilot review old.md new.md     # review two local revisions
//	docpilot review --brief old.md new.md
//	docpilot config show              # print effective configuration
//
// Credentials come from MINIMAX_API_KEY, MINIMAX_GROUP_ID and either
// GITHUB_TOKEN or GitHub App settings (GITHUB_APP_ID,
// GITHUB_INSTALLATION_ID, GITHUB_PRIVATE_KEY_PATH).
package main
