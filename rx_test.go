package rx

import (
	"fmt"
)

func ExampleDerive2() {
	a := NewAssign(1)
	b := NewAssign(0)
	c := Derive2(func(a, b int) int { return a + b }, a, b)
	fmt.Println(c.Get())

	b.Set(2)
	fmt.Println(c.Get())

	a.Set(3)
	fmt.Println(c.Get())

	// Output:
	// 1
	// 3
	// 5
}

func ExampleBind1() {
	view := NewAssign("")
	eye := NewAssign("origin")

	binder := Bind1(view, func(pos string) string { return "looking from " + pos }, eye)
	defer binder.Close()
	fmt.Println(view.Get())

	eye.Set("above")
	fmt.Println(view.Get())

	// Output:
	// looking from origin
	// looking from above
}

func ExampleDirty() {
	brightness := NewDirty(0.5)
	NewObserver(brightness, func() { fmt.Println("brightness", brightness.Get()) })

	// a slider dragged back and forth within one frame
	brightness.Set(0.7)
	brightness.Set(0.9)
	brightness.Check()
	brightness.Check()

	// Output:
	// brightness 0.9
}
