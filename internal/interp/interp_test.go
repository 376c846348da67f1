package interp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsfrontend"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func run(t *testing.T, src string) (jsvalue.Value, error) {
	t.Helper()
	prog, err := jsfrontend.Parse(src)
	require.NoError(t, err)
	return interp.New().Run(prog)
}

func runOK(t *testing.T, src string) jsvalue.Value {
	t.Helper()
	v, err := run(t, src)
	require.NoError(t, err)
	return v
}

func TestHoistingAndClosures(t *testing.T) {
	v := runOK(t, `
		function makeCounter() {
			var count = 0;
			function increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		counter();
		counter();
		counter();
	`)
	assert.Equal(t, float64(3), v.Num())
}

func TestVarHoistedAboveUse(t *testing.T) {
	v := runOK(t, `
		function f() {
			var result = typeof hoisted;
			var hoisted = 1;
			return result;
		}
		f();
	`)
	assert.Equal(t, "undefined", v.Str())
}

func TestFunctionDeclarationHoistedWholeFunction(t *testing.T) {
	v := runOK(t, `
		var r = early();
		function early() { return "called before its own text position"; }
		r;
	`)
	assert.Equal(t, "called before its own text position", v.Str())
}

func TestConstructorAndPrototypeChain(t *testing.T) {
	v := runOK(t, `
		function Animal(name) {
			this.name = name;
		}
		Animal.prototype.speak = function () {
			return this.name + " makes a sound";
		};
		function Dog(name) {
			Animal.call(this, name);
		}
		Dog.prototype = Animal.prototype;
		var d = new Dog("Rex");
		d.speak();
	`)
	assert.Equal(t, "Rex makes a sound", v.Str())
}

func TestNewBindsThisAndReturnsInstance(t *testing.T) {
	v := runOK(t, `
		function Point(x, y) {
			this.x = x;
			this.y = y;
		}
		var p = new Point(3, 4);
		p.x + p.y;
	`)
	assert.Equal(t, float64(7), v.Num())
}

func TestNewPrescansConstructorBodyForThisAssignments(t *testing.T) {
	v := runOK(t, `
		var log = [];
		function describe(obj) {
			log.push(obj.hasOwnProperty("ready") + "," + (typeof obj.ready));
		}
		function Widget() {
			describe(this);
			this.ready = true;
		}
		new Widget();
		log.join(";");
	`)
	assert.Equal(t, "true,undefined", v.Str())
}

func TestTryCatchFinallyOrdering(t *testing.T) {
	v := runOK(t, `
		var log = [];
		function risky() {
			try {
				log.push("try");
				throw "boom";
			} catch (e) {
				log.push("catch:" + e);
			} finally {
				log.push("finally");
			}
			return log.join(",");
		}
		risky();
	`)
	assert.Equal(t, "try,catch:boom,finally", v.Str())
}

func TestFinallyThrowReplacesTryThrow(t *testing.T) {
	_, err := run(t, `
		function f() {
			try {
				throw "inner";
			} finally {
				throw "from finally";
			}
		}
		f();
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from finally")
}

func TestArrayMethods(t *testing.T) {
	v := runOK(t, `
		var nums = [1, 2, 3, 4, 5];
		var doubled = nums.map(function (n) { return n * 2; });
		var evens = doubled.filter(function (n) { return n % 4 === 0; });
		var sum = evens.reduce(function (acc, n) { return acc + n; }, 0);
		sum;
	`)
	assert.Equal(t, float64(12), v.Num())
}

func TestBitwiseOperatorsUse32BitSemantics(t *testing.T) {
	v := runOK(t, `(2147483647 + 1) | 0;`)
	assert.Equal(t, float64(-2147483648), v.Num())
}

func TestBitwiseLeftShiftCountWrapsModulo32(t *testing.T) {
	v := runOK(t, `1 << 32;`)
	assert.Equal(t, float64(1), v.Num())
}

func TestUnsignedRightShiftIsUnsigned(t *testing.T) {
	v := runOK(t, `(-1) >>> 0;`)
	assert.Equal(t, float64(4294967295), v.Num())
}

func TestReferenceErrorOnUndeclaredLookup(t *testing.T) {
	_, err := run(t, `doesNotExist;`)
	require.Error(t, err)
}

func TestForInEnumeratesOwnKeys(t *testing.T) {
	v := runOK(t, `
		var obj = { a: 1, b: 2, c: 3 };
		var keys = [];
		for (var k in obj) {
			keys.push(k);
		}
		keys.join(",");
	`)
	assert.Equal(t, "a,b,c", v.Str())
}

func TestSwitchFallthrough(t *testing.T) {
	v := runOK(t, `
		function classify(n) {
			var out = "";
			switch (n) {
				case 1:
					out += "one";
				case 2:
					out += "two";
					break;
				default:
					out += "other";
			}
			return out;
		}
		classify(1);
	`)
	assert.Equal(t, "onetwo", v.Str())
}
