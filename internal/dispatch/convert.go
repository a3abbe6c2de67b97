package dispatch

import (
	"fmt"
	"strconv"

	"conshell/pkg/contypes"
)

// Convert turns one argument token into a typed value per the declared
// parameter kind. Conversion failures are reported, never panicked, so the
// binder can move on to the next overload.
func Convert(token string, kind contypes.ParamKind) (contypes.Value, error) {
	v := contypes.Value{Kind: kind, Str: token}
	switch kind {
	case contypes.KindString:
		return v, nil
	case contypes.KindInt:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return v, fmt.Errorf("%q is not an integer", token)
		}
		v.Int = n
		return v, nil
	case contypes.KindFloat:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return v, fmt.Errorf("%q is not a number", token)
		}
		v.Float = f
		return v, nil
	case contypes.KindBool:
		b, err := strconv.ParseBool(token)
		if err != nil {
			return v, fmt.Errorf("%q is not a boolean", token)
		}
		v.Bool = b
		return v, nil
	default:
		return v, fmt.Errorf("unsupported parameter kind %d", kind)
	}
}

// FormatValue renders a typed value for display, used by variable gets and
// the "*" listing.
func FormatValue(v contypes.Value) string {
	switch v.Kind {
	case contypes.KindInt:
		return strconv.FormatInt(v.Int, 10)
	case contypes.KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case contypes.KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}
