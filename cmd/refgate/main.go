// Command refgate is the admin CLI for the update gate: dry-run checks,
// policy inspection, and hook installation.
package main

func main() {
	Execute()
}
