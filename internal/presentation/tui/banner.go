package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs a professional ASCII art banner for CareerMate.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Teal/Sky)
	s1 := termenv.String("   _____                          __  __       _       ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("  / ____|                        |  \\/  |     | |      ").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(" | |     __ _ _ __ ___  ___ _ __ | \\  / | __ _| |_ ___ ").Foreground(p.Color("#38bdf8"))
	s4 := termenv.String(" | |    / _` | '__/ _ \\/ _ \\ '__|| |\\/| |/ _` | __/ _ \\").Foreground(p.Color("#60a5fa"))
	s5 := termenv.String(" | |___| (_| | | |  __/  __/ |   | |  | | (_| | ||  __/").Foreground(p.Color("#818cf8"))
	s6 := termenv.String("  \\_____\\__,_|_|  \\___|\\___|_|   |_|  |_|\\__,_|\\__\\___|").Foreground(p.Color("#a78bfa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
