//go:build windows

package webgpu

// WGSL compute shaders for tensor operations.
// Using string constants instead of embed for simplicity.

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// addShader performs element-wise addition: result = a + b.
const addShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] + b[idx];
    }
}
`

// subShader performs element-wise subtraction: result = a - b.
const subShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] - b[idx];
    }
}
`

// mulShader performs element-wise multiplication: result = a * b.
const mulShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] * b[idx];
    }
}
`

// divShader performs element-wise division: result = a / b.
const divShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] / b[idx];
    }
}
`

// maxpoolShader performs windowed max reduction over up to three
// spatial axes. Inputs with fewer spatial axes are dispatched with
// leading size-1 axes so one kernel serves every rank.
//
// One thread per output element. Out-of-bounds (padding) taps never
// contribute; a window with no valid tap yields the lowest finite f32
// (WGSL has no -inf literal).
const maxpoolShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> output: array<f32>;

struct Params {
    total: u32,
    in0: u32,
    in1: u32,
    in2: u32,
    out0: u32,
    out1: u32,
    out2: u32,
    win0: u32,
    win1: u32,
    win2: u32,
    str0: u32,
    str1: u32,
    str2: u32,
    dil0: u32,
    dil1: u32,
    dil2: u32,
    pad0: i32,
    pad1: i32,
    pad2: i32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.total) {
        return;
    }

    let out_spatial = params.out0 * params.out1 * params.out2;
    let plane = idx / out_spatial;
    var rem = idx % out_spatial;
    let o0 = rem / (params.out1 * params.out2);
    rem = rem % (params.out1 * params.out2);
    let o1 = rem / params.out2;
    let o2 = rem % params.out2;

    let base = plane * params.in0 * params.in1 * params.in2;

    var best: f32 = -3.402823466e38;
    for (var k0: u32 = 0u; k0 < params.win0; k0 = k0 + 1u) {
        let i0 = i32(o0 * params.str0 + k0 * params.dil0) - params.pad0;
        if (i0 < 0 || i0 >= i32(params.in0)) {
            continue;
        }
        for (var k1: u32 = 0u; k1 < params.win1; k1 = k1 + 1u) {
            let i1 = i32(o1 * params.str1 + k1 * params.dil1) - params.pad1;
            if (i1 < 0 || i1 >= i32(params.in1)) {
                continue;
            }
            for (var k2: u32 = 0u; k2 < params.win2; k2 = k2 + 1u) {
                let i2 = i32(o2 * params.str2 + k2 * params.dil2) - params.pad2;
                if (i2 < 0 || i2 >= i32(params.in2)) {
                    continue;
                }
                let flat = base + u32(i0) * params.in1 * params.in2 + u32(i1) * params.in2 + u32(i2);
                best = max(best, input[flat]);
            }
        }
    }
    output[idx] = best;
}
`
