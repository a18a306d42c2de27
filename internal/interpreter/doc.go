// Package interpreter runs GeoTortue scripts.
//
// A run lexes the script, maps localized words to canonical commands,
// parses it and walks the tree. Turtle commands are broadcast to every
// turtle of the repository; expressions go through the matheval package.
//
//	in, err := interpreter.New(interpreter.Options{Language: lang, Logger: logger})
//	if err != nil {
//		return err
//	}
//	res, err := in.Execute(ctx, "rep 4 [ av 100; td 90 ]")
//
// Soft problems such as an unknown procedure or an invalid color are
// logged and the run goes on. Syntax errors reject the whole script
// before anything runs.
package interpreter
