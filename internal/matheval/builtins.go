package matheval

import (
	"math"

	"github.com/msto63/geotortue/internal/value"
)

func unary(name string, f func(float64) float64) Function {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Nil, evalError("%s expects 1 argument, got %d", name, len(args))
		}
		return mapNumbers(args[0], f)
	}
}

func numbers(name string, args []value.Value, lo, hi int) ([]float64, error) {
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return nil, evalError("%s: wrong number of arguments (%d)", name, len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toNumber(a)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// flatten expands list arguments for aggregate functions
func flatten(args []value.Value) []value.Value {
	var out []value.Value
	for _, a := range args {
		if items, ok := a.Items(); ok {
			out = append(out, flatten(items)...)
			continue
		}
		out = append(out, a)
	}
	return out
}

func aggregate(name string, pick func(a, b float64) float64) Function {
	return func(args []value.Value) (value.Value, error) {
		xs, err := numbers(name, flatten(args), 1, -1)
		if err != nil {
			return value.Nil, err
		}
		acc := xs[0]
		for _, x := range xs[1:] {
			acc = pick(acc, x)
		}
		return value.Num(acc), nil
	}
}

func builtins(random func() float64) map[string]Function {
	fns := map[string]Function{
		"sin":   unary("sin", math.Sin),
		"cos":   unary("cos", math.Cos),
		"tan":   unary("tan", math.Tan),
		"asin":  unary("asin", math.Asin),
		"acos":  unary("acos", math.Acos),
		"atan":  unary("atan", math.Atan),
		"sqrt":  unary("sqrt", math.Sqrt),
		"abs":   unary("abs", math.Abs),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
		"round": unary("round", math.Round),
		"fix":   unary("fix", math.Trunc),
		"exp":   unary("exp", math.Exp),
		"log10": unary("log10", math.Log10),
		"sign": unary("sign", func(x float64) float64 {
			switch {
			case x > 0:
				return 1
			case x < 0:
				return -1
			}
			return 0
		}),
		"min": aggregate("min", math.Min),
		"max": aggregate("max", math.Max),
		"sum": aggregate("sum", func(a, b float64) float64 { return a + b }),
	}

	fns["atan2"] = func(args []value.Value) (value.Value, error) {
		xs, err := numbers("atan2", args, 2, 2)
		if err != nil {
			return value.Nil, err
		}
		return value.Num(math.Atan2(xs[0], xs[1])), nil
	}
	fns["pow"] = func(args []value.Value) (value.Value, error) {
		xs, err := numbers("pow", args, 2, 2)
		if err != nil {
			return value.Nil, err
		}
		return value.Num(math.Pow(xs[0], xs[1])), nil
	}
	fns["mod"] = func(args []value.Value) (value.Value, error) {
		xs, err := numbers("mod", args, 2, 2)
		if err != nil {
			return value.Nil, err
		}
		return value.Num(floorMod(xs[0], xs[1])), nil
	}
	fns["log"] = func(args []value.Value) (value.Value, error) {
		xs, err := numbers("log", args, 1, 2)
		if err != nil {
			return value.Nil, err
		}
		if len(xs) == 2 {
			return value.Num(math.Log(xs[0]) / math.Log(xs[1])), nil
		}
		return value.Num(math.Log(xs[0])), nil
	}
	// random() in [0,1), random(max) in [0,max), random(min, max)
	fns["random"] = func(args []value.Value) (value.Value, error) {
		xs, err := numbers("random", args, 0, 2)
		if err != nil {
			return value.Nil, err
		}
		r := random()
		switch len(xs) {
		case 1:
			r *= xs[0]
		case 2:
			r = xs[0] + r*(xs[1]-xs[0])
		}
		return value.Num(r), nil
	}
	fns["size"] = func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Nil, evalError("size expects 1 argument, got %d", len(args))
		}
		return value.Num(float64(args[0].Len())), nil
	}
	fns["length"] = fns["size"]
	fns["item"] = func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Nil, evalError("item expects 2 arguments, got %d", len(args))
		}
		items, ok := args[0].Items()
		if !ok {
			return value.Nil, evalError("item expects a list")
		}
		i, err := toNumber(args[1])
		if err != nil {
			return value.Nil, err
		}
		// indexes are 1-based
		idx := int(i) - 1
		if idx < 0 || idx >= len(items) {
			return value.Nil, evalError("index %d out of range [1, %d]", idx+1, len(items))
		}
		return items[idx], nil
	}
	return fns
}
