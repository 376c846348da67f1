package browser

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/google/uuid"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installCrypto builds window.crypto: randomUUID (google/uuid, the
// teacher's own dependency for opaque identifiers), getRandomValues
// (crypto/rand), and crypto.subtle.digest/encrypt/decrypt against the
// stdlib crypto primitives (spec §4.B "Crypto").
func installCrypto(in *interp.Interpreter, window *jsvalue.Record) {
	c := jsproto.NewObjectRecord()
	c.Class = "Crypto"

	c.Set("randomUUID", native("randomUUID", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Str(uuid.New().String()), nil
	}))

	c.Set("getRandomValues", native("getRandomValues", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) == 0 || args[0].Kind() != jsvalue.KindByteArray {
			return jsvalue.Undefined, jsproto.NewTypeError("getRandomValues requires a typed array")
		}
		arr := args[0].ByteArray()
		buf := make([]byte, len(arr.Elems)*arr.Kind.ByteWidth())
		if _, err := rand.Read(buf); err != nil {
			return jsvalue.Undefined, jsproto.NewTypeError("%s", err.Error())
		}
		width := arr.Kind.ByteWidth()
		for i := range arr.Elems {
			var v uint64
			for b := 0; b < width; b++ {
				v |= uint64(buf[i*width+b]) << (8 * b)
			}
			arr.Elems[i] = float64(v)
		}
		return args[0], nil
	}))

	subtle := jsproto.NewObjectRecord()
	subtle.Class = "SubtleCrypto"
	subtle.Set("digest", native("digest", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) < 2 {
			return jsvalue.Undefined, jsproto.NewTypeError("digest requires an algorithm and data")
		}
		algo := jsvalue.ToString(args[0])
		data := byteArrayBytes(args[1])
		var sum []byte
		switch algo {
		case "SHA-1":
			h := sha1.Sum(data)
			sum = h[:]
		case "SHA-256":
			h := sha256.Sum256(data)
			sum = h[:]
		case "SHA-384":
			h := sha512.Sum384(data)
			sum = h[:]
		case "SHA-512":
			h := sha512.Sum512(data)
			sum = h[:]
		case "MD5":
			h := md5.Sum(data)
			sum = h[:]
		default:
			return jsvalue.Undefined, jsproto.NewTypeError("Unrecognized algorithm name %s", algo)
		}
		arr := jsvalue.NewByteArray(jsvalue.ElemU8, len(sum))
		for i, b := range sum {
			arr.Elems[i] = float64(b)
		}
		return jsvalue.FromByteArray(arr), nil
	}))
	subtle.Set("encrypt", native("encrypt", aesGCM(true)))
	subtle.Set("decrypt", native("decrypt", aesGCM(false)))
	c.Set("subtle", jsvalue.FromRecord(subtle))

	defineBoth(in, window, "crypto", jsvalue.FromRecord(c))
}

func byteArrayBytes(v jsvalue.Value) []byte {
	if v.Kind() == jsvalue.KindString {
		return []byte(v.Str())
	}
	if v.Kind() != jsvalue.KindByteArray {
		return nil
	}
	arr := v.ByteArray()
	buf := make([]byte, len(arr.Elems))
	for i, e := range arr.Elems {
		buf[i] = byte(uint8(e))
	}
	return buf
}

// aesGCM implements AES-GCM encrypt/decrypt for crypto.subtle, keyed by a
// raw byte-array key (this sandbox has no CryptoKey wrapper/import
// pipeline — spec Non-goals exclude a full WebCrypto key-management
// model, so the key is taken directly as bytes).
func aesGCM(encrypt bool) jsvalue.NativeFunc {
	return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) < 3 {
			return jsvalue.Undefined, jsproto.NewTypeError("encrypt/decrypt require algorithm, key, and data")
		}
		algoRec, ok := args[0].Record(), args[0].Kind() == jsvalue.KindRecord
		var iv []byte
		if ok {
			if ivVal, present := algoRec.Get("iv"); present {
				iv = byteArrayBytes(ivVal)
			}
		}
		key := byteArrayBytes(args[1])
		data := byteArrayBytes(args[2])

		block, err := aes.NewCipher(key)
		if err != nil {
			return jsvalue.Undefined, jsproto.NewTypeError("%s", err.Error())
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return jsvalue.Undefined, jsproto.NewTypeError("%s", err.Error())
		}

		var out []byte
		if encrypt {
			out = gcm.Seal(nil, iv, data, nil)
		} else {
			out, err = gcm.Open(nil, iv, data, nil)
			if err != nil {
				return jsvalue.Undefined, jsproto.NewTypeError("decryption failed: %s", err.Error())
			}
		}
		arr := jsvalue.NewByteArray(jsvalue.ElemU8, len(out))
		for i, b := range out {
			arr.Elems[i] = float64(b)
		}
		return jsvalue.FromByteArray(arr), nil
	}
}
