package frame

// Layout holds pixel geometry for board frames.
type Layout struct {
	Cell       int // cell edge length
	Pad        int // margin around the board
	SideWidth  int // side panel width
	SideGap    int // space between board margin and side panel text
	Trim       int // connector inset from a cell's center toward its border
	BorderSize float64
}

// DefaultLayout matches the published documentation frames.
func DefaultLayout() Layout {
	return Layout{Cell: 60, Pad: 24, SideWidth: 180, SideGap: 16, Trim: 4, BorderSize: 2}
}

// Size returns the frame size for a rows x cols board.
func (l Layout) Size(rows, cols int) (w, h int) {
	return cols*l.Cell + 2*l.Pad + l.SideWidth, rows*l.Cell + 2*l.Pad
}

// CellOrigin returns the top-left pixel of the cell at (row, col).
func (l Layout) CellOrigin(row, col int) (x, y float64) {
	return float64(l.Pad + col*l.Cell), float64(l.Pad + row*l.Cell)
}

// CellCenter returns the center pixel of the cell at (row, col).
func (l Layout) CellCenter(row, col int) (x, y float64) {
	return float64(l.Pad + col*l.Cell + l.Cell/2), float64(l.Pad + row*l.Cell + l.Cell/2)
}

// SideX returns the left edge of the side panel text for a board cols wide.
func (l Layout) SideX(cols int) float64 {
	return float64(cols*l.Cell + 2*l.Pad + l.SideGap)
}
