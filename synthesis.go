package mpa

// SynthesisFilter reconstructs 32 PCM samples from 32 subband samples. One
// filter serves one channel. Subband input is in the -1..1 fraction range;
// output arrives in 16-bit PCM scale because the synthesis window carries the
// scale factor.
type SynthesisFilter struct {
	v    [1024]float32
	u    [32]float32
	in   [32]float32
	vPos int

	channel int
	eq      [32]float32
}

// NewSynthesisFilter creates a filter writing to the given output channel.
func NewSynthesisFilter(channel int) *SynthesisFilter {
	f := &SynthesisFilter{channel: channel}
	for i := range f.eq {
		f.eq[i] = 1
	}

	return f
}

// SetEQ installs per-subband gain factors. A nil slice restores flat gain;
// a short slice leaves the remaining bands flat.
func (f *SynthesisFilter) SetEQ(eq []float32) {
	for i := range f.eq {
		if eq != nil && i < len(eq) {
			f.eq[i] = eq[i]
		} else {
			f.eq[i] = 1
		}
	}
}

// InputSample stores one subband sample for the next synthesis step.
func (f *SynthesisFilter) InputSample(sample float32, subband int) {
	f.in[subband] = sample * f.eq[subband]
}

// InputSamples stores all 32 subband samples for the next synthesis step.
func (f *SynthesisFilter) InputSamples(samples []float32) {
	for i := 0; i < 32; i++ {
		f.in[i] = samples[i] * f.eq[i]
	}
}

// Reset clears the filter history, as after a seek.
func (f *SynthesisFilter) Reset() {
	for i := range f.v {
		f.v[i] = 0
	}
	f.vPos = 0
}

// CalculatePCM runs one synthesis step over the stored subband samples and
// appends 32 PCM samples to out.
func (f *SynthesisFilter) CalculatePCM(out Output) {
	f.vPos = (f.vPos - 64) & 1023

	f.idct36(f.vPos)

	// Build U, windowing, calculate output
	for i := range f.u {
		f.u[i] = 0
	}

	dIndex := 512 - (f.vPos >> 1)
	vIndex := (f.vPos % 128) >> 1
	for vIndex < 1024 {
		for i := 0; i < 32; i++ {
			f.u[i] += window[dIndex] * f.v[vIndex]
			dIndex++
			vIndex++
		}

		vIndex += 128 - 32
		dIndex += 64 - 32
	}

	dIndex -= 512 - 32
	vIndex = (128 - 32 + 1024) - vIndex
	for vIndex < 1024 {
		for i := 0; i < 32; i++ {
			f.u[i] += window[dIndex] * f.v[vIndex]
			dIndex++
			vIndex++
		}

		vIndex += 128 - 32
		dIndex += 64 - 32
	}

	out.AppendSamples(f.channel, f.u[:])

	// Subbands without an allocation never write an input sample, so the
	// input vector must not carry values into the next step.
	for i := range f.in {
		f.in[i] = 0
	}
}

// idct36 computes the 32-point inverse DCT of the stored subband samples and
// scatters the 64 results into the V ring at dp.
func (f *SynthesisFilter) idct36(dp int) {
	s := &f.in
	d := f.v[:]

	var t01, t02, t03, t04, t05, t06, t07, t08, t09, t10, t11, t12,
		t13, t14, t15, t16, t17, t18, t19, t20, t21, t22, t23, t24,
		t25, t26, t27, t28, t29, t30, t31, t32, t33 float32

	t01 = s[0] + s[31]
	t02 = (s[0] - s[31]) * 0.500602998235
	t03 = s[1] + s[30]
	t04 = (s[1] - s[30]) * 0.505470959898
	t05 = s[2] + s[29]
	t06 = (s[2] - s[29]) * 0.515447309923
	t07 = s[3] + s[28]
	t08 = (s[3] - s[28]) * 0.53104259109
	t09 = s[4] + s[27]
	t10 = (s[4] - s[27]) * 0.553103896034
	t11 = s[5] + s[26]
	t12 = (s[5] - s[26]) * 0.582934968206
	t13 = s[6] + s[25]
	t14 = (s[6] - s[25]) * 0.622504123036
	t15 = s[7] + s[24]
	t16 = (s[7] - s[24]) * 0.674808341455
	t17 = s[8] + s[23]
	t18 = (s[8] - s[23]) * 0.744536271002
	t19 = s[9] + s[22]
	t20 = (s[9] - s[22]) * 0.839349645416
	t21 = s[10] + s[21]
	t22 = (s[10] - s[21]) * 0.972568237862
	t23 = s[11] + s[20]
	t24 = (s[11] - s[20]) * 1.16943993343
	t25 = s[12] + s[19]
	t26 = (s[12] - s[19]) * 1.48416461631
	t27 = s[13] + s[18]
	t28 = (s[13] - s[18]) * 2.05778100995
	t29 = s[14] + s[17]
	t30 = (s[14] - s[17]) * 3.40760841847
	t31 = s[15] + s[16]
	t32 = (s[15] - s[16]) * 10.1900081235

	t33 = t01 + t31
	t31 = (t01 - t31) * 0.502419286188
	t01 = t03 + t29
	t29 = (t03 - t29) * 0.52249861494
	t03 = t05 + t27
	t27 = (t05 - t27) * 0.566944034816
	t05 = t07 + t25
	t25 = (t07 - t25) * 0.64682178336
	t07 = t09 + t23
	t23 = (t09 - t23) * 0.788154623451
	t09 = t11 + t21
	t21 = (t11 - t21) * 1.06067768599
	t11 = t13 + t19
	t19 = (t13 - t19) * 1.72244709824
	t13 = t15 + t17
	t17 = (t15 - t17) * 5.10114861869
	t15 = t33 + t13
	t13 = (t33 - t13) * 0.509795579104
	t33 = t01 + t11
	t01 = (t01 - t11) * 0.601344886935
	t11 = t03 + t09
	t09 = (t03 - t09) * 0.899976223136
	t03 = t05 + t07
	t07 = (t05 - t07) * 2.56291544774
	t05 = t15 + t03
	t15 = (t15 - t03) * 0.541196100146
	t03 = t33 + t11
	t11 = (t33 - t11) * 1.30656296488
	t33 = t05 + t03
	t05 = (t05 - t03) * 0.707106781187
	t03 = t15 + t11
	t15 = (t15 - t11) * 0.707106781187
	t03 += t15
	t11 = t13 + t07
	t13 = (t13 - t07) * 0.541196100146
	t07 = t01 + t09
	t09 = (t01 - t09) * 1.30656296488
	t01 = t11 + t07
	t07 = (t11 - t07) * 0.707106781187
	t11 = t13 + t09
	t13 = (t13 - t09) * 0.707106781187
	t11 += t13
	t01 += t11
	t11 += t07
	t07 += t13
	t09 = t31 + t17
	t31 = (t31 - t17) * 0.509795579104
	t17 = t29 + t19
	t29 = (t29 - t19) * 0.601344886935
	t19 = t27 + t21
	t21 = (t27 - t21) * 0.899976223136
	t27 = t25 + t23
	t23 = (t25 - t23) * 2.56291544774
	t25 = t09 + t27
	t09 = (t09 - t27) * 0.541196100146
	t27 = t17 + t19
	t19 = (t17 - t19) * 1.30656296488
	t17 = t25 + t27
	t27 = (t25 - t27) * 0.707106781187
	t25 = t09 + t19
	t19 = (t09 - t19) * 0.707106781187
	t25 += t19
	t09 = t31 + t23
	t31 = (t31 - t23) * 0.541196100146
	t23 = t29 + t21
	t21 = (t29 - t21) * 1.30656296488
	t29 = t09 + t23
	t23 = (t09 - t23) * 0.707106781187
	t09 = t31 + t21
	t31 = (t31 - t21) * 0.707106781187
	t09 += t31
	t29 += t09
	t09 += t23
	t23 += t31
	t17 += t29
	t29 += t25
	t25 += t09
	t09 += t27
	t27 += t23
	t23 += t19
	t19 += t31
	t21 = t02 + t32
	t02 = (t02 - t32) * 0.502419286188
	t32 = t04 + t30
	t04 = (t04 - t30) * 0.52249861494
	t30 = t06 + t28
	t28 = (t06 - t28) * 0.566944034816
	t06 = t08 + t26
	t08 = (t08 - t26) * 0.64682178336
	t26 = t10 + t24
	t10 = (t10 - t24) * 0.788154623451
	t24 = t12 + t22
	t22 = (t12 - t22) * 1.06067768599
	t12 = t14 + t20
	t20 = (t14 - t20) * 1.72244709824
	t14 = t16 + t18
	t16 = (t16 - t18) * 5.10114861869
	t18 = t21 + t14
	t14 = (t21 - t14) * 0.509795579104
	t21 = t32 + t12
	t32 = (t32 - t12) * 0.601344886935
	t12 = t30 + t24
	t24 = (t30 - t24) * 0.899976223136
	t30 = t06 + t26
	t26 = (t06 - t26) * 2.56291544774
	t06 = t18 + t30
	t18 = (t18 - t30) * 0.541196100146
	t30 = t21 + t12
	t12 = (t21 - t12) * 1.30656296488
	t21 = t06 + t30
	t30 = (t06 - t30) * 0.707106781187
	t06 = t18 + t12
	t12 = (t18 - t12) * 0.707106781187
	t06 += t12
	t18 = t14 + t26
	t26 = (t14 - t26) * 0.541196100146
	t14 = t32 + t24
	t24 = (t32 - t24) * 1.30656296488
	t32 = t18 + t14
	t14 = (t18 - t14) * 0.707106781187
	t18 = t26 + t24
	t24 = (t26 - t24) * 0.707106781187
	t18 += t24
	t32 += t18
	t18 += t14
	t26 = t14 + t24
	t14 = t02 + t16
	t02 = (t02 - t16) * 0.509795579104
	t16 = t04 + t20
	t04 = (t04 - t20) * 0.601344886935
	t20 = t28 + t22
	t22 = (t28 - t22) * 0.899976223136
	t28 = t08 + t10
	t10 = (t08 - t10) * 2.56291544774
	t08 = t14 + t28
	t14 = (t14 - t28) * 0.541196100146
	t28 = t16 + t20
	t20 = (t16 - t20) * 1.30656296488
	t16 = t08 + t28
	t28 = (t08 - t28) * 0.707106781187
	t08 = t14 + t20
	t20 = (t14 - t20) * 0.707106781187
	t08 += t20
	t14 = t02 + t10
	t02 = (t02 - t10) * 0.541196100146
	t10 = t04 + t22
	t22 = (t04 - t22) * 1.30656296488
	t04 = t14 + t10
	t10 = (t14 - t10) * 0.707106781187
	t14 = t02 + t22
	t02 = (t02 - t22) * 0.707106781187
	t14 += t02
	t04 += t14
	t14 += t10
	t10 += t02
	t16 += t04
	t04 += t08
	t08 += t14
	t14 += t28
	t28 += t10
	t10 += t20
	t20 += t02
	t21 += t16
	t16 += t32
	t32 += t04
	t04 += t06
	t06 += t08
	t08 += t18
	t18 += t14
	t14 += t30
	t30 += t28
	t28 += t26
	t26 += t10
	t10 += t12
	t12 += t20
	t20 += t24
	t24 += t02

	d[dp+48] = -t33
	d[dp+49] = -t21
	d[dp+47] = -t21
	d[dp+50] = -t17
	d[dp+46] = -t17
	d[dp+51] = -t16
	d[dp+45] = -t16
	d[dp+52] = -t01
	d[dp+44] = -t01
	d[dp+53] = -t32
	d[dp+43] = -t32
	d[dp+54] = -t29
	d[dp+42] = -t29
	d[dp+55] = -t04
	d[dp+41] = -t04
	d[dp+56] = -t03
	d[dp+40] = -t03
	d[dp+57] = -t06
	d[dp+39] = -t06
	d[dp+58] = -t25
	d[dp+38] = -t25
	d[dp+59] = -t08
	d[dp+37] = -t08
	d[dp+60] = -t11
	d[dp+36] = -t11
	d[dp+61] = -t18
	d[dp+35] = -t18
	d[dp+62] = -t09
	d[dp+34] = -t09
	d[dp+63] = -t14
	d[dp+33] = -t14
	d[dp+32] = -t05
	d[dp+0] = t05
	d[dp+31] = -t30
	d[dp+1] = t30
	d[dp+30] = -t27
	d[dp+2] = t27
	d[dp+29] = -t28
	d[dp+3] = t28
	d[dp+28] = -t07
	d[dp+4] = t07
	d[dp+27] = -t26
	d[dp+5] = t26
	d[dp+26] = -t23
	d[dp+6] = t23
	d[dp+25] = -t10
	d[dp+7] = t10
	d[dp+24] = -t15
	d[dp+8] = t15
	d[dp+23] = -t12
	d[dp+9] = t12
	d[dp+22] = -t19
	d[dp+10] = t19
	d[dp+21] = -t20
	d[dp+11] = t20
	d[dp+20] = -t13
	d[dp+12] = t13
	d[dp+19] = -t24
	d[dp+13] = t24
	d[dp+18] = -t31
	d[dp+14] = t31
	d[dp+17] = -t02
	d[dp+15] = t02
	d[dp+16] = 0.0
}

// window is the synthesis window duplicated across 1024 entries so the
// windowing loop never wraps. The 512 base values carry the 16-bit PCM scale.
var window [1024]float32

func init() {
	for i, d := range synthesisWindow {
		window[i] = d
		window[i+512] = d
	}
}

var synthesisWindow = [512]float32{
	0.0, -0.5, -0.5, -0.5, -0.5, -0.5,
	-0.5, -1.0, -1.0, -1.0, -1.0, -1.5,
	-1.5, -2.0, -2.0, -2.5, -2.5, -3.0,
	-3.5, -3.5, -4.0, -4.5, -5.0, -5.5,
	-6.5, -7.0, -8.0, -8.5, -9.5, -10.5,
	-12.0, -13.0, -14.5, -15.5, -17.5, -19.0,
	-20.5, -22.5, -24.5, -26.5, -29.0, -31.5,
	-34.0, -36.5, -39.5, -42.5, -45.5, -48.5,
	-52.0, -55.5, -58.5, -62.5, -66.0, -69.5,
	-73.5, -77.0, -80.5, -84.5, -88.0, -91.5,
	-95.0, -98.0, -101.0, -104.0, 106.5, 109.0,
	111.0, 112.5, 113.5, 114.0, 114.0, 113.5,
	112.0, 110.5, 107.5, 104.0, 100.0, 94.5,
	88.5, 81.5, 73.0, 63.5, 53.0, 41.5,
	28.5, 14.5, -1.0, -18.0, -36.0, -55.5,
	-76.5, -98.5, -122.0, -147.0, -173.5, -200.5,
	-229.5, -259.5, -290.5, -322.5, -355.5, -389.5,
	-424.0, -459.5, -495.5, -532.0, -568.5, -605.0,
	-641.5, -678.0, -714.0, -749.0, -783.5, -817.0,
	-849.0, -879.5, -908.5, -935.0, -959.5, -981.0,
	-1000.5, -1016.0, -1028.5, -1037.5, -1042.5, -1043.5,
	-1040.0, -1031.5, 1018.5, 1000.0, 976.0, 946.5,
	911.0, 869.5, 822.0, 767.5, 707.0, 640.0,
	565.5, 485.0, 397.0, 302.5, 201.0, 92.5,
	-22.5, -144.0, -272.5, -407.0, -547.5, -694.0,
	-846.0, -1003.0, -1165.0, -1331.5, -1502.0, -1675.5,
	-1852.5, -2031.5, -2212.5, -2394.0, -2576.5, -2758.5,
	-2939.5, -3118.5, -3294.5, -3467.5, -3635.5, -3798.5,
	-3955.0, -4104.5, -4245.5, -4377.5, -4499.0, -4609.5,
	-4708.0, -4792.5, -4863.5, -4919.0, -4958.0, -4979.5,
	-4983.0, -4967.5, -4931.5, -4875.0, -4796.0, -4694.5,
	-4569.5, -4420.0, -4246.0, -4046.0, -3820.0, -3567.0,
	3287.0, 2979.5, 2644.0, 2280.5, 1888.0, 1467.5,
	1018.5, 541.0, 35.0, -499.0, -1061.0, -1650.0,
	-2266.5, -2909.0, -3577.0, -4270.0, -4987.5, -5727.5,
	-6490.0, -7274.0, -8077.5, -8899.5, -9739.0, -10594.5,
	-11464.5, -12347.0, -13241.0, -14144.5, -15056.0, -15973.5,
	-16895.5, -17820.0, -18744.5, -19668.0, -20588.0, -21503.0,
	-22410.5, -23308.5, -24195.0, -25068.5, -25926.5, -26767.0,
	-27589.0, -28389.0, -29166.5, -29919.0, -30644.5, -31342.0,
	-32009.5, -32645.0, -33247.0, -33814.5, -34346.0, -34839.5,
	-35295.0, -35710.0, -36084.5, -36417.5, -36707.5, -36954.0,
	-37156.5, -37315.0, -37428.0, -37496.0, 37519.0, 37496.0,
	37428.0, 37315.0, 37156.5, 36954.0, 36707.5, 36417.5,
	36084.5, 35710.0, 35295.0, 34839.5, 34346.0, 33814.5,
	33247.0, 32645.0, 32009.5, 31342.0, 30644.5, 29919.0,
	29166.5, 28389.0, 27589.0, 26767.0, 25926.5, 25068.5,
	24195.0, 23308.5, 22410.5, 21503.0, 20588.0, 19668.0,
	18744.5, 17820.0, 16895.5, 15973.5, 15056.0, 14144.5,
	13241.0, 12347.0, 11464.5, 10594.5, 9739.0, 8899.5,
	8077.5, 7274.0, 6490.0, 5727.5, 4987.5, 4270.0,
	3577.0, 2909.0, 2266.5, 1650.0, 1061.0, 499.0,
	-35.0, -541.0, -1018.5, -1467.5, -1888.0, -2280.5,
	-2644.0, -2979.5, 3287.0, 3567.0, 3820.0, 4046.0,
	4246.0, 4420.0, 4569.5, 4694.5, 4796.0, 4875.0,
	4931.5, 4967.5, 4983.0, 4979.5, 4958.0, 4919.0,
	4863.5, 4792.5, 4708.0, 4609.5, 4499.0, 4377.5,
	4245.5, 4104.5, 3955.0, 3798.5, 3635.5, 3467.5,
	3294.5, 3118.5, 2939.5, 2758.5, 2576.5, 2394.0,
	2212.5, 2031.5, 1852.5, 1675.5, 1502.0, 1331.5,
	1165.0, 1003.0, 846.0, 694.0, 547.5, 407.0,
	272.5, 144.0, 22.5, -92.5, -201.0, -302.5,
	-397.0, -485.0, -565.5, -640.0, -707.0, -767.5,
	-822.0, -869.5, -911.0, -946.5, -976.0, -1000.0,
	1018.5, 1031.5, 1040.0, 1043.5, 1042.5, 1037.5,
	1028.5, 1016.0, 1000.5, 981.0, 959.5, 935.0,
	908.5, 879.5, 849.0, 817.0, 783.5, 749.0,
	714.0, 678.0, 641.5, 605.0, 568.5, 532.0,
	495.5, 459.5, 424.0, 389.5, 355.5, 322.5,
	290.5, 259.5, 229.5, 200.5, 173.5, 147.0,
	122.0, 98.5, 76.5, 55.5, 36.0, 18.0,
	1.0, -14.5, -28.5, -41.5, -53.0, -63.5,
	-73.0, -81.5, -88.5, -94.5, -100.0, -104.0,
	-107.5, -110.5, -112.0, -113.5, -114.0, -114.0,
	-113.5, -112.5, -111.0, -109.0, 106.5, 104.0,
	101.0, 98.0, 95.0, 91.5, 88.0, 84.5,
	80.5, 77.0, 73.5, 69.5, 66.0, 62.5,
	58.5, 55.5, 52.0, 48.5, 45.5, 42.5,
	39.5, 36.5, 34.0, 31.5, 29.0, 26.5,
	24.5, 22.5, 20.5, 19.0, 17.5, 15.5,
	14.5, 13.0, 12.0, 10.5, 9.5, 8.5,
	8.0, 7.0, 6.5, 5.5, 5.0, 4.5,
	4.0, 3.5, 3.5, 3.0, 2.5, 2.5,
	2.0, 2.0, 1.5, 1.5, 1.0, 1.0,
	1.0, 1.0, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5,
}
