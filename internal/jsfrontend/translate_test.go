package jsfrontend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsfrontend"
)

func TestParseAcceptsSupportedSubset(t *testing.T) {
	src := `
		var x = 1;
		function f(a, b) { return a + b; }
		if (x > 0) { x = x - 1; } else { x = 0; }
		for (var i = 0; i < 3; i++) { x += i; }
		for (var k in {a: 1}) { x += 1; }
		while (x > 100) { break; }
		do { x++; } while (false);
		switch (x) {
			case 1: x = 2; break;
			default: x = 3;
		}
		try { throw 'e'; } catch (e) { x = 0; } finally { x = 1; }
		outer: for (;;) { break outer; }
		var obj = {a: 1, b: [1, 2, 3]};
		var n = new f(1, 2);
		var cond = x > 0 ? 1 : 2;
		var seq = (1, 2, 3);
	`
	prog, err := jsfrontend.Parse(src)
	require.NoError(t, err)
	assert.NotNil(t, prog)
	assert.NotEmpty(t, prog.Body)
}

func TestParseRejectsLetAndConst(t *testing.T) {
	_, err := jsfrontend.Parse(`let x = 1;`)
	assert.Error(t, err)
	_, err = jsfrontend.Parse(`const x = 1;`)
	assert.Error(t, err)
}

func TestParseRejectsArrowFunctions(t *testing.T) {
	_, err := jsfrontend.Parse(`var f = (x) => x + 1;`)
	assert.Error(t, err)
}

func TestParseRejectsTemplateLiterals(t *testing.T) {
	_, err := jsfrontend.Parse("var s = `hi`;")
	assert.Error(t, err)
}

func TestParseRejectsClasses(t *testing.T) {
	_, err := jsfrontend.Parse(`class C {}`)
	assert.Error(t, err)
}

func TestParseSurfacesSyntaxErrors(t *testing.T) {
	_, err := jsfrontend.Parse(`var x = ;`)
	assert.Error(t, err)
}
