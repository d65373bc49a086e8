package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/continuity1d/FV1D"
	"github.com/notargets/continuity1d/utils"
)

/*
	A 1D mesh file holds one "center width" pair per line for all imax+2 cells,
	the west ghost first and the east ghost last. Blank lines and lines starting
	with '#' or '%' are skipped.
*/

// ReadMesh1D reads the mesh file for a grid of imax physical cells
func ReadMesh1D(filename string, imax int, verbose bool) (m *FV1D.Mesh, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading 1D mesh file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		err = utils.NewConfigurationError("MeshFile", "unable to open file %s: %v", filename, err)
		return
	}
	defer file.Close()
	if m, err = ParseMesh1D(file, imax); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}

// ParseMesh1D reads imax+2 cells from r, anything after the last cell is ignored
func ParseMesh1D(r io.Reader, imax int) (m *FV1D.Mesh, err error) {
	var (
		reader = bufio.NewReader(r)
		n      = imax + 2
		x      = make([]float64, n)
		dx     = make([]float64, n)
		line   string
		lineNo int
	)
	if imax < 2 {
		err = utils.NewConfigurationError("Cells", "need at least 2 cells, got %d", imax)
		return
	}
	for i := 0; i < n; i++ {
		if line, lineNo, err = nextDataLine(reader, lineNo); err != nil {
			err = utils.NewConfigurationError("MeshFile", "expected %d cells, found %d: %v", n, i, err)
			return
		}
		var cnt int
		if cnt, err = fmt.Sscanf(line, "%g %g", &x[i], &dx[i]); err != nil || cnt != 2 {
			err = utils.NewConfigurationError("MeshFile", "line %d: unable to read center and width from [%s]", lineNo, line)
			return
		}
	}
	return FV1D.NewMesh(x, dx)
}

func nextDataLine(reader *bufio.Reader, lineNo int) (line string, no int, err error) {
	no = lineNo
	for {
		line, err = reader.ReadString('\n')
		if err != nil && !(err == io.EOF && len(line) != 0) {
			if err == io.EOF {
				err = fmt.Errorf("early end of file")
			}
			return
		}
		err = nil
		no++
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' || line[0] == '%' {
			continue
		}
		return
	}
}

// WriteMesh1D writes m in the format read by ReadMesh1D
func WriteMesh1D(w io.Writer, m *FV1D.Mesh) (err error) {
	bw := bufio.NewWriter(w)
	for i := range m.X {
		if _, err = fmt.Fprintf(bw, "%.13e %.13e\n", m.X[i], m.Dx[i]); err != nil {
			return
		}
	}
	return bw.Flush()
}
