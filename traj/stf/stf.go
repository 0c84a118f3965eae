/*
 * stf.go, part of goeos.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package stf

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/goeos"
	v3 "github.com/rmera/goeos/v3"
)

const (
	lzwLitwidth int = 8
	//DefaultPrec is the precision used when the header doesn't give one.
	DefaultPrec = 4
)

// Frame is one snapshot of a trajectory.
type Frame struct {
	Coords    *v3.Matrix
	Cell      []float64 //the 3 cell vectors, one after the other, or nil if not present
	Energy    float64
	HasEnergy bool
}

// Volume returns the volume of the frame's cell, or 0 if the frame has no cell.
func (F *Frame) Volume() float64 {
	if len(F.Cell) < 9 {
		return 0
	}
	c, _ := v3.NewMatrix(F.Cell[:9])
	return math.Abs(c.Det())
}

//Write!

// StfW is a handle for writing an STF trajectory.
type StfW struct {
	f         *os.File
	h         io.WriteCloser
	w         *bufio.Writer
	natoms    int
	filename  string
	writeable bool
	prec      int
	frames    int
}

// Close flushes all the pending frames and closes the file. The handle can't be used after this call.
func (S *StfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.w.Flush()
	if err2 := S.h.Close(); err == nil {
		err = err2
	}
	if err2 := S.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return &Error{err.Error(), S.filename, []string{"Close"}, true}
	}
	return nil
}

// Len returns the number of atoms per frame.
func (S *StfW) Len() int {
	return S.natoms
}

// Frames returns the number of frames written so far.
func (S *StfW) Frames() int {
	return S.frames
}

// WNext writes the coordinates in coord as the next frame of the trajectory. If given,
// box must contain the 9 components of the cell vectors, and can contain the frame's
// energy as a tenth element.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return &Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return &Error{NilCoordinates, S.filename, []string{"WNext"}, true}
	}
	v := coord.NVecs()
	if v != S.natoms {
		return &Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	var temp [3]int
	for i := 0; i < v; i++ {
		if _, err := S.w.WriteString(coordsEncode(coord.Vec(i), temp, S.prec)); err != nil {
			return &Error{err.Error(), S.filename, []string{"WNext"}, true}
		}
	}
	term := "*\n"
	if len(box) > 0 && len(box[0]) >= 9 {
		b := box[0]
		if len(b) > 10 {
			b = b[:10]
		}
		fields := make([]string, len(b))
		for i, f := range b {
			fields[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		term = "* " + strings.Join(fields, " ") + "\n"
	}
	if _, err := S.w.WriteString(term); err != nil {
		return &Error{err.Error(), S.filename, []string{"WNext"}, true}
	}
	S.frames++
	return nil
}

// WFrame writes F as the next frame of the trajectory.
func (S *StfW) WFrame(F *Frame) error {
	var box []float64
	if len(F.Cell) >= 9 {
		box = append(box, F.Cell[:9]...)
		if F.HasEnergy {
			box = append(box, F.Energy)
		}
	}
	if err := S.WNext(F.Coords, box); err != nil {
		return errDecorate(err, "WFrame")
	}
	return nil
}

// Record writes the configuration of atoms, with its cell and the given potential
// energy, as the next frame of the trajectory.
func (S *StfW) Record(atoms *chem.Atoms, energy float64) error {
	if atoms == nil {
		return &Error{NilCoordinates, S.filename, []string{"Record"}, true}
	}
	cell := atoms.Cell().RawMatrix().Data
	F := &Frame{Coords: atoms.Coords, Cell: cell, Energy: energy, HasEnergy: true}
	if err := S.WFrame(F); err != nil {
		return errDecorate(err, "Record")
	}
	return nil
}

// NewWriter creates the file name and returns a handle to write a trajectory with natoms atoms
// per frame into it. The header is written right away, its keys in alphabetical order. The "prec" key
// of header, if present, sets the precision for the coordinates. The compression is chosen from the
// last letter of name (see the package documentation).
func NewWriter(name string, natoms int, header map[string]string, compressionLevel ...int) (*StfW, error) {
	var level int = flate.BestCompression
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	if natoms <= 0 {
		return nil, &Error{fmt.Sprintf("Invalid number of atoms: %d", natoms), name, []string{"NewWriter"}, true}
	}
	S := &StfW{filename: name, natoms: natoms, prec: DefaultPrec}
	if p, ok := header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			return nil, &Error{fmt.Sprintf("Invalid precision %q", p), name, []string{"NewWriter"}, true}
		}
		S.prec = prec
	}
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	case 'r':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, level) }
	default:
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		}
	}
	S.h, err = AnyNewWriter(S.f)
	if err != nil {
		S.f.Close()
		return nil, &Error{"Can't start the compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.w = bufio.NewWriter(S.h)
	keys := make([]string, 0, len(header)+1)
	for k := range header {
		if k != "prec" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	fmt.Fprintf(S.w, "prec=%d\n", S.prec)
	for _, k := range keys {
		v := strings.ReplaceAll(header[k], "\n", " ")
		fmt.Fprintf(S.w, "%s=%s\n", k, v)
	}
	if _, err := fmt.Fprintf(S.w, "** %d\n", S.natoms); err != nil {
		S.f.Close()
		return nil, &Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	S.writeable = true
	return S, nil
}

func coordsEncode(f [3]float64, temp [3]int, prec int) string {
	p := math.Pow(10.0, float64(prec))
	for i, v := range f {
		temp[i] = int(math.RoundToEven(v * p))
	}
	return fmt.Sprintf("%d %d %d\n", temp[0], temp[1], temp[2])
}

//Read!

var _ chem.Traj = (*StfR)(nil)

// StfR is a handle for reading an STF trajectory.
type StfR struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
}

// zstd.Decoder's Close doesn't return an error, so it is not an io.ReadCloser.
type zstdrc struct {
	*zstd.Decoder
}

// Close Closes the object. It can not be used after this call
func (s zstdrc) Close() error {
	s.Decoder.Close()
	return nil
}

// New opens a STF trajectory for reading, and returns a pointer
// to the handle, a map with the header (including "prec")
// and error or nil.
func New(name string) (*StfR, map[string]string, error) {
	S := &StfR{filename: name, natoms: -1, prec: DefaultPrec}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case 'r':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	default:
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return zstdrc{r}, nil
		}
	}
	S.dec, err = AnyNewReader(bufio.NewReader(S.f))
	if err != nil {
		S.f.Close()
		return nil, nil, &Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.dec)
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			S.close()
			return nil, nil, &Error{"Can't read header: " + err.Error(), name, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				S.close()
				return nil, nil, &Error{fmt.Sprintf("Can't read atom number from '%s'", str), name, []string{"New"}, true}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil {
				S.close()
				return nil, nil, &Error{fmt.Sprintf("Can't read atom number from '%s': %s", nat[1], err.Error()), name, []string{"New"}, true}
			}
			break
		}
		k, v, found := strings.Cut(str, "=")
		if !found {
			S.close()
			return nil, nil, &Error{"Malformed header line: " + str, name, []string{"New"}, true}
		}
		m[k] = v
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			S.close()
			return nil, nil, &Error{fmt.Sprintf("Invalid precision %q", p), name, []string{"New"}, true}
		}
		S.prec = prec
	}
	S.readable = true
	return S, m, nil
}

// Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *StfR) Readable() bool {
	return S.readable
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := math.Pow(10.0, float64(prec))
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("Ill formatted coordinates line in stf: %d fields: %s", len(s), str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("Can't parse coordinate %d (%s). Error: %s", i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

// Next puts in the given matrix (c) the coordinates for the next frame of the trajectory
// and, if given, and the information is present, puts the cell (and, as a tenth element,
// the energy, if box has room for it) in box. If c is nil the frame is read and checked, but
// discarded. At the end of the trajectory, it returns a LastFrameError.
func (S *StfR) Next(c *v3.Matrix, box ...[]float64) error {
	F, err := S.next(c != nil, len(box) > 0 && len(box[0]) >= 9)
	if err != nil {
		return errDecorate(err, "Next")
	}
	if c != nil {
		c.Copy(F.Coords)
	}
	if len(box) > 0 && len(box[0]) >= 9 && F.Cell != nil {
		copy(box[0], F.Cell)
		if len(box[0]) >= 10 && F.HasEnergy {
			box[0][9] = F.Energy
		}
	}
	return nil
}

// NextFrame reads and returns the next frame of the trajectory. At the end of the trajectory,
// it returns a LastFrameError.
func (S *StfR) NextFrame() (*Frame, error) {
	F, err := S.next(true, true)
	if err != nil {
		return nil, errDecorate(err, "NextFrame")
	}
	return F, nil
}

func (S *StfR) next(keep, wantbox bool) (*Frame, error) {
	if !S.readable {
		return nil, &Error{TrajUnIniRead, S.filename, []string{"next"}, true}
	}
	F := new(Frame)
	if keep {
		F.Coords = v3.Zeros(S.natoms)
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		b, err := S.h.ReadString('\n')
		if err != nil {
			// EOF should only happen when reading the first atom
			if err == io.EOF && i == 0 && b == "" {
				//nothing bad happened here, the trajectory just ended.
				S.close()
				return nil, newlastFrameError(S.filename, "next")
			}
			return nil, &Error{ReadError + ": " + err.Error(), S.filename, []string{"next"}, true}
		}
		if strings.HasPrefix(b, "*") {
			return nil, &Error{fmt.Sprintf("%s: frame with %d atoms, %d expected", WrongFormat, i, S.natoms), S.filename, []string{"next"}, true}
		}
		if err := coordsDecode(strings.TrimSuffix(b, "\n"), &temp, S.prec); err != nil {
			return nil, &Error{err.Error(), S.filename, []string{"next"}, true}
		}
		if keep {
			F.Coords.SetVec(i, temp)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return nil, &Error{"Can't read the frame termination mark: " + err.Error(), S.filename, []string{"next"}, true}
	}
	if len(s) == 0 || s[0] != '*' {
		return nil, &Error{fmt.Sprintf("%s: more atoms than the %d expected", WrongFormat, S.natoms), S.filename, []string{"next"}, true}
	}
	if !wantbox {
		return F, nil
	}
	fields := strings.Fields(s)[1:]
	if len(fields) < 9 {
		return F, nil
	}
	vals := make([]float64, len(fields))
	for j, v := range fields {
		vals[j], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &Error{fmt.Sprintf("%s: can't parse the cell: %s", WrongFormat, err.Error()), S.filename, []string{"next"}, true}
		}
	}
	F.Cell = vals[:9]
	if len(vals) >= 10 {
		F.Energy = vals[9]
		F.HasEnergy = true
	}
	return F, nil
}

func (S *StfR) close() {
	S.dec.Close()
	S.f.Close()
	S.readable = false
}

// Close closes the object, and marks it as unreadable
func (S *StfR) Close() {
	if !S.readable {
		return
	}
	S.close()
}

// Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}

// ReadAll reads all the frames of the trajectory in the file name. It returns the frames,
// the header, and an error or nil.
func ReadAll(name string) ([]*Frame, map[string]string, error) {
	S, header, err := New(name)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadAll")
	}
	defer S.Close()
	var frames []*Frame
	for {
		F, err := S.NextFrame()
		if err != nil {
			if _, ok := err.(chem.LastFrameError); ok {
				break
			}
			return frames, header, errDecorate(err, "ReadAll")
		}
		frames = append(frames, F)
	}
	return frames, header, nil
}

//Errors

// errDecorate is a helper function that asserts that the error is
// implements chem.Error and decorates the error with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(chem.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

// Error is the general structure for STF trajectory errors. It fullfills  chem.Error and chem.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("stf file %s error: %s", err.filename, err.message)
}

// Decorate Adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing trajectory was associated
func (err *Error) FileName() string { return err.filename }

// Format returns the format of the file (always "stf") associated to the error
func (err *Error) Format() string { return "stf" }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the STF file or frame"
)

// lastFrameError implements chem.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "stf" }

// Is makes errors.Is(err, io.EOF) true for the end of a trajectory.
func (E *lastFrameError) Is(target error) bool { return target == io.EOF }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
