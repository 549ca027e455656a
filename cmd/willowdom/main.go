// Command willowdom opens a demo scene with the inspector attached, or dumps
// the mirror of that scene without opening a window.
package main

func main() {
	Execute()
}
