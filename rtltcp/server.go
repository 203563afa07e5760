// {{{ Copyright (c) Paul R. Tagliamonte <paul@k3xec.com>, 2020
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE. }}}

package rtltcp

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
	"hz.tools/rf"

	mrrp "github.com/mrrp-sdr/mrrp"
	"github.com/mrrp-sdr/mrrp/stream"
)

// dnssdServiceType is the DNS-SD service type rtl_tcp-compatible clients
// (GQRX, SDR#) can be taught to browse for.
const dnssdServiceType = "_rtl-tcp._tcp"

var (
	// ErrSDRNotFound will be returned if no SDR can be acquired.
	ErrSDRNotFound error = fmt.Errorf("rtltcp: SDR Not Found")
)

// ServerHandler will return an SDR to be used by the incoming
// connection.
type ServerHandler func(context.Context) (mrrp.Receiver, error)

// CommandHandler will handle incoming requests and process them
type CommandHandler func(context.Context, mrrp.Receiver, Request) error

// Server encapsulates internal state to listen for and handle incoming
// requests from the client.
type Server struct {
	// (Optional) TCP address to listen on.
	Addr string

	// Handler will be called when a new request comes in, and be used to create
	// the mrrp.Receiver to be used by the Server runtime, and stream IQ samples
	// to the remote end.
	//
	// TODO(paultag): rename Handler
	Handler ServerHandler

	// CommandHandler will handle incoming requests and process them. If nil,
	// the default handler will be used.
	CommandHandler CommandHandler

	// (Optional) If CommandHandler is not set, this value is used to tell the
	// default command handler what gain stage to control.
	GainStageName string

	// (Optional) If CommandHandler is not set, this value is used to tell the
	// default command handler what IF gain stage to control. If empty, IF
	// gain requests are ignored.
	IFGainStageName string

	// ConnContext will create a context based on the provided net.Conn
	ConnContext func(ctx context.Context, c net.Conn) context.Context

	// Advertise, if true, announces this server over mDNS/DNS-SD so
	// clients on the local network can find it without being told an
	// address, rather than requiring the operator to know or configure
	// the listen address up front.
	Advertise bool

	// AdvertiseName is the DNS-SD instance name to advertise under, if
	// Advertise is set. If empty, a hostname-derived default is used.
	AdvertiseName string
}

func (s Server) advertise(addr net.Addr) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		log.Warn("mDNS advertisement requires a TCP listener, skipping")
		return
	}

	name := s.AdvertiseName
	if name == "" {
		name = "mrrp rtl_tcp"
	}

	cfg := dnssd.Config{
		Name: name,
		Type: dnssdServiceType,
		Port: tcpAddr.Port,
	}

	svc, err := dnssd.NewService(cfg)
	if err != nil {
		log.Error("mDNS: creating service", "err", err)
		return
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		log.Error("mDNS: creating responder", "err", err)
		return
	}

	if _, err := responder.Add(svc); err != nil {
		log.Error("mDNS: adding service", "err", err)
		return
	}

	log.Infof("mDNS: advertising %q on port %s", name, strconv.Itoa(tcpAddr.Port))

	go func() {
		if err := responder.Respond(context.Background()); err != nil {
			log.Error("mDNS: responder stopped", "err", err)
		}
	}()
}

// ifGainStages is a 6-stage virtual IF gain accumulator, mirroring the way
// rtl_tcp clients (SDR#, GQRX, ...) address per-stage IF gain on tuners with
// more than one IF amplifier: each CommandSetIFGain request names a stage
// index 1-6 in its high 16 bits and a gain in tenths of a dB in its low 16
// bits, and the effective IF gain is the sum across all stages.
type ifGainStages [6]int

func (s ifGainStages) total() float32 {
	sum := 0
	for _, v := range s {
		sum += v
	}
	return float32(sum) / 10
}

// NewDefaultCommandHandler will create the default rtltcp CommandHandler
// connected to the provided GainStage and IF GainStage.
func NewDefaultCommandHandler(defaultGainStageName, defaultIFGainStageName string) CommandHandler {
	gainState := ifGainStages{}

	return func(ctx context.Context, dev mrrp.Receiver, request Request) error {
		arg := request.Argument
		switch request.Command {
		case CommandSetFreq:
			log.Infof("setting center frequency to %s", rf.Hz(arg))
			return dev.SetCenterFrequency(rf.Hz(arg))
		case CommandSetSampleRate:
			log.Infof("setting sample rate to %d", arg)
			return dev.SetSampleRate(arg)
		case CommandSetGainMode:
			log.Infof("setting gain mode to %d", arg)
			return dev.SetAutomaticGain(arg == 0)
		case CommandSetGain:
			gain := 0.1 * float32(arg)
			log.Infof("setting gain to %f (%d)", gain, arg)
			return mrrp.SetGainStages(dev, map[string]float32{
				defaultGainStageName: gain,
			})
		case CommandSetIFGain:
			if defaultIFGainStageName == "" {
				log.Debug("no IF gain stage configured, ignoring")
				return nil
			}
			gain := int16(arg & 0xFFFF)
			stage := (arg >> 16) - 1
			if stage > 5 {
				log.Warnf("malformed IF gain request: stage=%d gain=%d", stage, gain)
				return nil
			}
			gainState[stage] = int(gain)
			log.Debugf("IF gain stage %d set to %d, total %f", stage, gain, gainState.total())
			return mrrp.SetGainStages(dev, map[string]float32{
				defaultIFGainStageName: gainState.total(),
			})
		case CommandSetBiasTee:
			// TODO(paultag): This one may be worth implementing.
			return nil
		case CommandSetAGCMode, CommandSetDirectSampling, CommandSetOffsetTuning:
			// Ignore!
			return nil
		default:
			log.Warnf("unsupported command: %x (%s)", request.Command, request.Command)
		}

		return nil
	}
}

// Tunerable is an interface that allows the Sdr to specify what kind of
// RTL-SDR-compatible Tuner is being used.
type Tunerable interface {
	Tuner() TunerType
}

func (s Server) serveConn(ctx context.Context, conn net.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer conn.Close()
	defer cancel()

	if s.ConnContext != nil {
		ctx = s.ConnContext(ctx, conn)
	}

	dev, err := s.Handler(ctx)
	if err != nil {
		log.Error("accepting new connection, closing", "err", err)
		return err
	}
	defer dev.Close()

	tuner := TunerUnknown
	tunerable, ok := dev.(Tunerable)
	if ok {
		tuner = tunerable.Tuner()
		log.Infof("tuner detected as %s", tuner)
	}

	// TunerInfo
	if err := binary.Write(conn, binary.BigEndian, &DongleInfo{
		Magic:     [4]byte{'R', 'T', 'L', '0'},
		TunerType: uint32(tuner),
	}); err != nil {
		log.Error("writing DongleInfo", "err", err)
		return err
	}

	handler := s.CommandHandler
	if handler == nil {
		handler = NewDefaultCommandHandler(
			s.GainStageName,
			s.IFGainStageName,
		)
	}

	reader, err := dev.StartRx()
	if err != nil {
		log.Error("starting SDR receiver", "err", err)
		return err
	}
	defer reader.Close()

	u8Reader, err := stream.ConvertReader(reader, mrrp.SampleFormatU8)
	if err != nil {
		log.Error("creating conversion reader", "err", err)
		cancel()
		return err
	}

	writer := mrrp.ByteWriter(conn, binary.LittleEndian, 0, mrrp.SampleFormatU8)

	go func() {
		defer cancel()
		req := Request{}
		for {
			if ctx.Err() != nil {
				return
			}
			if err := binary.Read(conn, binary.BigEndian, &req); err != nil {
				if err == io.EOF {
					return
				}
				log.Warn("reading command, discarding", "err", err)
				continue
			}
			log.Debugf("%#v", req)
			if err := handler(ctx, dev, req); err != nil {
				log.Warn("processing command, discarding", "err", err)
				continue
			}
		}
	}()

	_, err = mrrp.Copy(writer, u8Reader)
	if err != nil {
		log.Error("copying samples", "err", err)
		return err
	}

	return nil
}

// Serve will accept connections from the provided listener, and serve
// client requests.
func (s Server) Serve(listener net.Listener) error {
	ctx := context.TODO()
	// TODO: Have this configurable in the Server struct, and augment this
	// with peer info.

	if s.Advertise {
		s.advertise(listener.Addr())
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		go s.serveConn(ctx, conn)
	}
}

// ListenAndServe will listen for incoming requests and return them as required.
func (s Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// vim: foldmethod=marker
