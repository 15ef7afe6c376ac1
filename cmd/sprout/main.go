// Command sprout runs the portfolio site with growth animations, renders
// scripted sessions to PNG, and serves the site over HTTP.
package main

func main() {
	Execute()
}
