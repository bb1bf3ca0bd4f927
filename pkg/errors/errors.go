// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// エラーは InvalidArgument / IllDefinedModel / InsufficientData の3種類に分類され、
// cockroachdb/errors によるスタックトレースが付与されます。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("adspend-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	エラー種別
//
// ===========================================================================

// Kind はエラーの分類です。
type Kind int

const (
	// KindUnknown はどの分類にも属さないエラーです。
	KindUnknown Kind = iota
	// KindInvalidArgument はサンプル数や割合などの引数が不正な場合です。
	KindInvalidArgument
	// KindIllDefinedModel は分散ゼロなどで統計量が定義できない場合です。
	KindIllDefinedModel
	// KindInsufficientData は評価に必要なサンプル数が足りない場合です。
	KindInsufficientData
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindIllDefinedModel:
		return "IllDefinedModel"
	case KindInsufficientData:
		return "InsufficientData"
	default:
		return "Unknown"
	}
}

var (
	// ErrInvalidArgument は不正な引数を表す番兵エラーです。
	ErrInvalidArgument = New("invalid argument")

	// ErrIllDefinedModel は定義できない統計量を表す番兵エラーです。
	ErrIllDefinedModel = New("ill-defined model")

	// ErrInsufficientData はデータ不足を表す番兵エラーです。
	ErrInsufficientData = New("insufficient data")
)

// KindOf はエラーチェーンからエラー種別を判定します。
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case Is(err, ErrIllDefinedModel):
		return KindIllDefinedModel
	case Is(err, ErrInsufficientData):
		return KindInsufficientData
	default:
		return KindUnknown
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// UndefinedMetricWarning は評価指標が計算できない場合に発生する警告です。
// 例えば、テストサンプルが2件以下で残差標準誤差が定義できない場合など。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // この条件で返される値
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning は新しいUndefinedMetricWarningを作成します。
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("adspend: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("adspend: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

// Is により DimensionError は InvalidArgument として扱われます。
func (e *DimensionError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("adspend: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// Is により ValidationError は InvalidArgument として扱われます。
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError").
		Str("kind", KindInvalidArgument.String())
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は引数の値が不適切な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("adspend: %s: %s", e.Op, e.Message)
}

// Is により ValueError は InvalidArgument として扱われます。
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// IllDefinedError は分散がゼロなどの理由で統計量が定義できない場合のエラーです。
type IllDefinedError struct {
	Op       string
	Quantity string // 定義できない量（例: "slope", "r2"）
	Reason   string
}

func (e *IllDefinedError) Error() string {
	return fmt.Sprintf("adspend: %s: %s is undefined: %s", e.Op, e.Quantity, e.Reason)
}

// Is により IllDefinedError は IllDefinedModel として扱われます。
func (e *IllDefinedError) Is(target error) bool {
	return target == ErrIllDefinedModel
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IllDefinedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("quantity", e.Quantity).
		Str("reason", e.Reason).
		Str("type", "IllDefinedError").
		Str("kind", KindIllDefinedModel.String())
}

// NewIllDefinedError は新しいIllDefinedErrorを作成し、スタックトレースを付与します。
func NewIllDefinedError(op, quantity, reason string) error {
	return errors.WithStack(&IllDefinedError{Op: op, Quantity: quantity, Reason: reason})
}

// InsufficientDataError は計算に必要なサンプル数に満たない場合のエラーです。
type InsufficientDataError struct {
	Op   string
	Need int // 必要な最小サンプル数
	Got  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("adspend: %s: need at least %d samples, got %d", e.Op, e.Need, e.Got)
}

// Is により InsufficientDataError は InsufficientData として扱われます。
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("need", e.Need).
		Int("got", e.Got).
		Str("type", "InsufficientDataError").
		Str("kind", KindInsufficientData.String())
}

// NewInsufficientDataError は新しいInsufficientDataErrorを作成し、スタックトレースを付与します。
func NewInsufficientDataError(op string, need, got int) error {
	return errors.WithStack(&InsufficientDataError{Op: op, Need: need, Got: got})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}
