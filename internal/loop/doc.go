// Package loop runs the Claude CLI repeatedly until it reports completion.
//
// Each iteration:
//   - launches `claude` with a fixed, non-interactive argument list and the
//     prompt passed by @reference
//   - reads the merged stdout/stderr stream one line at a time, appending
//     every raw line to the transcript, buffering it, and printing its
//     rendered form
//   - after the process exits, scans the buffered output for the
//     <CLAUDE>DONE</CLAUDE> and <CLAUDE>BLOCKED: ...</CLAUDE> sentinels
//
// The loop stops on done, blocked, a non-zero exit, or when the iteration
// limit is reached. Iterations never run concurrently.
package loop
