package transform

// knownGlobals may be referenced from interpolations without a declaration.
var knownGlobals = map[string]bool{
	// ECMAScript
	"Array": true, "ArrayBuffer": true, "BigInt": true, "Boolean": true,
	"DataView": true, "Date": true, "Error": true, "EvalError": true,
	"Float32Array": true, "Float64Array": true, "Function": true,
	"Infinity": true, "Int8Array": true, "Int16Array": true, "Int32Array": true,
	"Intl": true, "JSON": true, "Map": true, "Math": true, "NaN": true,
	"Number": true, "Object": true, "Promise": true, "Proxy": true,
	"RangeError": true, "ReferenceError": true, "Reflect": true, "RegExp": true,
	"Set": true, "String": true, "Symbol": true, "SyntaxError": true,
	"TypeError": true, "URIError": true, "Uint8Array": true,
	"Uint8ClampedArray": true, "Uint16Array": true, "Uint32Array": true,
	"WeakMap": true, "WeakSet": true, "decodeURI": true,
	"decodeURIComponent": true, "encodeURI": true, "encodeURIComponent": true,
	"escape": true, "globalThis": true, "isFinite": true, "isNaN": true,
	"parseFloat": true, "parseInt": true, "undefined": true, "unescape": true,

	// Browser
	"window": true, "document": true, "navigator": true, "location": true,
	"screen": true, "devicePixelRatio": true, "CSS": true,

	// Node / CommonJS
	"process": true, "require": true, "module": true, "exports": true,
	"__dirname": true, "__filename": true, "Buffer": true, "global": true,
}
