// Package conflict decides what happens when a template file would land on a
// path that already exists. Decisions come from a Chooser (an interactive menu
// in the CLI, a fixed answer for scripted runs) and an "... All" answer is
// remembered in the RunContext for the remainder of one scaffolding run.
package conflict
