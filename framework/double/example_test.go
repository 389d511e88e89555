package double_test

import (
	"fmt"

	"github.com/km-arc/magicmock/framework/double"
	"github.com/km-arc/magicmock/framework/resolver"
)

type greeter interface {
	Greet(name string) string
}

type greeterDouble struct{ double.Double }

func (d *greeterDouble) Greet(name string) string { return d.Called(name).String(0) }

type welcome struct{ greeter greeter }

func newWelcome(g greeter) *welcome { return &welcome{greeter: g} }

func (w *welcome) Message() string { return w.greeter.Greet("ada") + "!" }

func Example() {
	e := double.NewEngine()
	double.Register(e, func() greeter { return &greeterDouble{} })

	r := resolver.New(e.Option())
	if err := r.Constructors(newWelcome); err != nil {
		panic(err)
	}

	w := resolver.MustResolve[*welcome](r)
	fmt.Printf("%q\n", w.Message())

	double.Setup[greeter](r, "Greet", "ada").Return("hello ada")
	fmt.Println(w.Message())

	d, _ := double.Of[greeter](r)
	fmt.Println(d.Check("Greet", double.Exactly(2)))
	fmt.Println(d.Check("Greet", double.Once()))
	// Output:
	// "!"
	// hello ada!
	// <nil>
	// double: greeter.Greet: expected exactly 1 call(s), got 2
}
