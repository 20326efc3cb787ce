package factory

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/san-kum/machinesim/internal/machine"
)

// ImagesDirectory is where machine images live under the resources directory.
const ImagesDirectory = "images"

var ErrUnknownMachine = errors.New("factory: unknown machine")

// Factory builds and wires one machine.
type Factory interface {
	Create(number int) *machine.Machine
}

// Constructor builds a factory that loads images from imagesDir.
type Constructor func(imagesDir string) Factory

type entry struct {
	name string
	ctor Constructor
}

type Registry struct {
	resourcesDir string
	factories    map[int]entry
}

// NewRegistry returns a registry holding the built-in machines.
func NewRegistry(resourcesDir string) *Registry {
	r := &Registry{
		resourcesDir: resourcesDir,
		factories:    make(map[int]entry),
	}

	r.Register(1, "siege", func(dir string) Factory { return NewMachine1(dir) })
	r.Register(2, "spinner", func(dir string) Factory { return NewMachine2(dir) })

	return r
}

// Register binds a machine number. A later registration replaces an
// earlier one.
func (r *Registry) Register(number int, name string, ctor Constructor) {
	r.factories[number] = entry{name: name, ctor: ctor}
}

func (r *Registry) ImagesDir() string {
	return filepath.Join(r.resourcesDir, ImagesDirectory)
}

func (r *Registry) Lookup(number int) (Factory, error) {
	e, ok := r.factories[number]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMachine, number)
	}
	return e.ctor(r.ImagesDir()), nil
}

// Create builds machine number. Numbers without a factory give an empty
// machine.
func (r *Registry) Create(number int) *machine.Machine {
	f, err := r.Lookup(number)
	if err != nil {
		return machine.New(number)
	}
	return f.Create(number)
}

func (r *Registry) Name(number int) string {
	return r.factories[number].name
}

// Numbers lists the registered machine numbers in ascending order.
func (r *Registry) Numbers() []int {
	nums := make([]int, 0, len(r.factories))
	for n := range r.factories {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
