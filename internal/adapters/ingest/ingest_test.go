package ingest_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/okian/throwbench/internal/adapters/ingest"
	"github.com/okian/throwbench/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestReadCSV(t *testing.T) {
	Convey("Given a CSV reader", t, func() {
		r := ingest.NewReader()
		ctx := context.Background()

		Convey("When reading a well-formed export with aliased headers", func() {
			src := strings.NewReader(strings.Join([]string{
				"ID,Time,Speed_MPH,RPM,Nose Angle,OAT,Hyzer,Launch,Throw-Type,Notes",
				"t1,09:01,52.4,980,2.5,3.1,-2,8.5,backhand,warmup",
				"t2,09:02,54.0,1010,,3.4,,,backhand|flex,",
				"t3,09:03,not-a-number,995,1.8,2.9,-1,9,forehand,good one",
			}, "\n"))

			s, err := r.ReadCSV(ctx, src, "session.csv")

			Convey("Then every row should come back in order", func() {
				So(err, ShouldBeNil)
				So(len(s.Throws), ShouldEqual, 3)
				So(s.Throws[0].Seq, ShouldEqual, 1)
				So(s.Throws[2].Seq, ShouldEqual, 3)
			})

			Convey("Then aliased columns should land on the right fields", func() {
				So(err, ShouldBeNil)
				first := s.Throws[0]
				So(first.ID, ShouldEqual, "t1")
				So(first.TimeLabel, ShouldEqual, "09:01")

				speed, ok := first.Speed.Value()
				So(ok, ShouldBeTrue)
				So(speed, ShouldEqual, 52.4)

				spin, ok := first.Spin.Value()
				So(ok, ShouldBeTrue)
				So(spin, ShouldEqual, 980)

				wobble, ok := first.Wobble.Value()
				So(ok, ShouldBeTrue)
				So(wobble, ShouldEqual, 3.1)

				So(first.Types, ShouldResemble, []string{"backhand"})
				So(first.Note, ShouldEqual, "warmup")
			})

			Convey("Then blank and junk cells should resolve to absent", func() {
				So(err, ShouldBeNil)
				So(s.Throws[1].Nose.Valid(), ShouldBeFalse)
				So(s.Throws[1].Hyzer.Valid(), ShouldBeFalse)
				So(s.Throws[2].Speed.Valid(), ShouldBeFalse)
				So(s.Throws[2].Spin.Valid(), ShouldBeTrue)
			})

			Convey("Then multi-valued type cells should split on the pipe", func() {
				So(err, ShouldBeNil)
				So(s.Throws[1].Types, ShouldResemble, []string{"backhand", "flex"})
			})
		})

		Convey("When rows repeat an id", func() {
			src := strings.NewReader(strings.Join([]string{
				"id,speed",
				"a,50",
				"b,51",
				"a,52",
				",53",
				",54",
			}, "\n"))

			s, err := r.ReadCSV(ctx, src, "dupes.csv")

			Convey("Then repeated ids should be dropped and counted", func() {
				So(err, ShouldBeNil)
				So(len(s.Throws), ShouldEqual, 4)
				So(s.Duplicates, ShouldEqual, 1)
			})

			Convey("Then blank ids should never be treated as duplicates", func() {
				So(err, ShouldBeNil)
				So(s.Throws[2].Seq, ShouldEqual, 3)
				So(s.Throws[3].Seq, ShouldEqual, 4)
			})
		})

		Convey("When rows are ragged", func() {
			src := strings.NewReader(strings.Join([]string{
				"id,speed,spin",
				"a,50",
				"b,51,900,extra-cell",
			}, "\n"))

			s, err := r.ReadCSV(ctx, src, "ragged.csv")

			Convey("Then short and long rows should both be tolerated", func() {
				So(err, ShouldBeNil)
				So(len(s.Throws), ShouldEqual, 2)
				So(s.Throws[0].Spin.Valid(), ShouldBeFalse)
				spin, ok := s.Throws[1].Spin.Value()
				So(ok, ShouldBeTrue)
				So(spin, ShouldEqual, 900)
			})
		})

		Convey("When the file is empty", func() {
			s, err := r.ReadCSV(ctx, strings.NewReader(""), "empty.csv")

			Convey("Then the session should be empty but valid", func() {
				So(err, ShouldBeNil)
				So(len(s.Throws), ShouldEqual, 0)
			})
		})

		Convey("When only a header is present", func() {
			s, err := r.ReadCSV(ctx, strings.NewReader("id,speed\n"), "header.csv")

			So(err, ShouldBeNil)
			So(len(s.Throws), ShouldEqual, 0)
		})

		Convey("When no header column is recognizable", func() {
			_, err := r.ReadCSV(ctx, strings.NewReader("foo,bar\n1,2\n"), "odd.csv")

			Convey("Then the file should be rejected", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ingest.ErrNoKnownColumns), ShouldBeTrue)
			})
		})

		Convey("When the CSV structure is broken", func() {
			_, err := r.ReadCSV(ctx, strings.NewReader("id,speed\n\"unterminated,50\n"), "broken.csv")

			Convey("Then a malformed-file error should surface", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ingest.ErrMalformedFile), ShouldBeTrue)
			})
		})
	})
}

func TestReadJSON(t *testing.T) {
	Convey("Given a JSON reader", t, func() {
		r := ingest.NewReader()
		ctx := context.Background()

		Convey("When reading an array of loosely-typed rows", func() {
			src := strings.NewReader(`[
				{"id":"t1","time":"09:01","speed":52.4,"rpm":"980","nose":null,"oat":3.1,"type":"backhand","notes":"first"},
				{"id":"t2","speed":" 54 ","spin_rpm":1010,"nose_angle":2.2,"types":["backhand","flex"]},
				{"id":"t3","speed":{"weird":true},"spin":"fast"}
			]`)

			s, err := r.ReadJSON(ctx, src, "session.json")

			Convey("Then rows should coerce field by field", func() {
				So(err, ShouldBeNil)
				So(len(s.Throws), ShouldEqual, 3)

				speed, ok := s.Throws[0].Speed.Value()
				So(ok, ShouldBeTrue)
				So(speed, ShouldEqual, 52.4)

				spin, ok := s.Throws[0].Spin.Value()
				So(ok, ShouldBeTrue)
				So(spin, ShouldEqual, 980)

				So(s.Throws[0].Nose.Valid(), ShouldBeFalse)
				So(s.Throws[0].Types, ShouldResemble, []string{"backhand"})
			})

			Convey("Then padded string numbers should parse", func() {
				So(err, ShouldBeNil)
				speed, ok := s.Throws[1].Speed.Value()
				So(ok, ShouldBeTrue)
				So(speed, ShouldEqual, 54)
				So(s.Throws[1].Types, ShouldResemble, []string{"backhand", "flex"})
			})

			Convey("Then junk-valued fields should resolve to absent", func() {
				So(err, ShouldBeNil)
				So(s.Throws[2].Speed.Valid(), ShouldBeFalse)
				So(s.Throws[2].Spin.Valid(), ShouldBeFalse)
			})
		})

		Convey("When rows repeat an id", func() {
			src := strings.NewReader(`[{"id":"a","speed":50},{"id":"a","speed":51}]`)

			s, err := r.ReadJSON(ctx, src, "dupes.json")

			So(err, ShouldBeNil)
			So(len(s.Throws), ShouldEqual, 1)
			So(s.Duplicates, ShouldEqual, 1)
		})

		Convey("When the JSON is not an array of objects", func() {
			_, err := r.ReadJSON(ctx, strings.NewReader(`{"throws":[]}`), "wrong.json")

			Convey("Then a malformed-file error should surface", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ingest.ErrMalformedFile), ShouldBeTrue)
			})
		})

		Convey("When the JSON is truncated", func() {
			_, err := r.ReadJSON(ctx, strings.NewReader(`[{"id":"a"`), "cut.json")

			So(err, ShouldNotBeNil)
			So(errors.Is(err, ingest.ErrMalformedFile), ShouldBeTrue)
		})

		Convey("When the array is empty", func() {
			s, err := r.ReadJSON(ctx, strings.NewReader(`[]`), "none.json")

			So(err, ShouldBeNil)
			So(len(s.Throws), ShouldEqual, 0)
		})
	})
}

func TestReadFile(t *testing.T) {
	Convey("Given path-based loading", t, func() {
		r := ingest.NewReader()
		ctx := context.Background()

		Convey("When the extension is not a session format", func() {
			_, err := r.ReadFile(ctx, "throws.xlsx")

			Convey("Then the format should be rejected up front", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := r.ReadFile(ctx, "no-such-file.csv")

			So(err, ShouldNotBeNil)
		})
	})
}
