package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/muesli/termenv"
)

// Draw the board, the macro grid and the game status. The highlighted move
// (if valid) is drawn in reverse video, empty cells of playable blocks as '-'.
func renderBoard(w io.Writer, s *uttt.State, highlight uttt.Move, opts ...termenv.OutputOption) {
	o := termenv.NewOutput(w, opts...)

	piece := func(p uttt.PieceType) termenv.Style {
		switch p {
		case uttt.PieceCross:
			return o.String("x").Foreground(o.Color("1")).Bold()
		case uttt.PieceCircle:
			return o.String("o").Foreground(o.Color("4")).Bold()
		}
		return o.String(".")
	}

	for x := range 9 {
		if x > 0 && x%3 == 0 {
			fmt.Fprintln(o, "------+-------+------")
		}

		row := make([]string, 0, 11)
		for y := range 9 {
			if y > 0 && y%3 == 0 {
				row = append(row, "|")
			}

			m := uttt.Move{X: uint8(x), Y: uint8(y)}
			style := piece(s.Cell(x, y))
			if s.Cell(x, y) == uttt.PieceNone && s.IsLegal(m) {
				style = o.String("-").Faint()
			}
			if m == highlight {
				style = style.Reverse()
			}
			row = append(row, style.String())
		}
		fmt.Fprintln(o, strings.Join(row, " "))
	}

	fmt.Fprintln(o)
	for bx, row := range s.Macro() {
		cells := make([]string, 3)
		for by, st := range row {
			cells[by] = macroCell(o, st)
		}
		fmt.Fprintf(o, "%s   %s\n", strings.Join(cells, " "), macroLegend(bx))
	}

	fmt.Fprintln(o)
	status := fmt.Sprintf("turn: %s, move: %d, round: %d", s.Turn(), s.MoveNumber(), s.RoundNumber())
	if s.IsTerminated() {
		status = "game over: " + s.Termination().String()
	}
	fmt.Fprintln(o, status)
}

func macroCell(o *termenv.Output, st uttt.BlockStatus) string {
	switch st {
	case uttt.BlockCrossWon:
		return o.String("X").Foreground(o.Color("1")).Bold().String()
	case uttt.BlockCircleWon:
		return o.String("O").Foreground(o.Color("4")).Bold().String()
	case uttt.BlockDrawn:
		return "="
	case uttt.BlockAvailable:
		return o.String("-").Faint().String()
	}
	return "."
}

func macroLegend(row int) string {
	switch row {
	case 0:
		return "X/O won, = drawn"
	case 1:
		return "- playable"
	}
	return ". not playable"
}
